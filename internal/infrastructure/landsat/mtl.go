package landsat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"LandWatch-App/internal/domain/model"
)

// MTL Landsat Level-2 メタデータファイル（KEY = VALUE 形式）
// 同じキーが複数のグループに現れる場合は最初の値を保持する
type MTL struct {
	values map[string]string
}

// ParseMTLFile ファイルを開いて解析する
func ParseMTLFile(path string) (*MTL, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseMTL(f)
}

// ParseMTL MTLテキストを解析する
func ParseMTL(r io.Reader) (*MTL, error) {
	m := &MTL{values: make(map[string]string)}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		key, value, ok := strings.Cut(sc.Text(), "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" || key == "GROUP" || key == "END_GROUP" {
			continue
		}
		if _, seen := m.values[key]; seen {
			continue
		}
		m.values[key] = strings.Trim(strings.TrimSpace(value), `"`)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("MTLの読み込みに失敗: %w", err)
	}
	return m, nil
}

// Get キーの値
func (m *MTL) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *MTL) ptr(key string) *string {
	v, ok := m.values[key]
	if !ok {
		return nil
	}
	return &v
}

// Metadata データパネル用のメタデータ
// SCENE_CENTER_TIME は小数秒を落とし、SPACECRAFT_ID は "LANDSAT_8" を "LANDSAT 8" にする
func (m *MTL) Metadata() model.LandsatMetadata {
	md := model.LandsatMetadata{
		WRSPath:          m.ptr("WRS_PATH"),
		WRSRow:           m.ptr("WRS_ROW"),
		DateAcquired:     m.ptr("DATE_ACQUIRED"),
		CloudCover:       m.ptr("CLOUD_COVER"),
		ImageQualityTIRS: m.ptr("IMAGE_QUALITY_TIRS"),
	}
	if v, ok := m.values["SCENE_CENTER_TIME"]; ok {
		v, _, _ = strings.Cut(v, ".")
		md.SceneCenterTime = &v
	}
	if v, ok := m.values["SPACECRAFT_ID"]; ok {
		v = SpacecraftName(v)
		md.SpacecraftID = &v
	}
	return md
}

// SpacecraftName "LANDSAT_8" -> "LANDSAT 8"
func SpacecraftName(id string) string {
	return strings.ReplaceAll(id, "_", " ")
}

// Scene シーン一覧の1行に変換する（中心座標は四隅の平均）
func (m *MTL) Scene() (model.Scene, error) {
	path, err := m.integer("WRS_PATH")
	if err != nil {
		return model.Scene{}, err
	}
	row, err := m.integer("WRS_ROW")
	if err != nil {
		return model.Scene{}, err
	}
	cloud, err := m.number("CLOUD_COVER")
	if err != nil {
		return model.Scene{}, err
	}
	acquired, err := m.acquiredAt()
	if err != nil {
		return model.Scene{}, err
	}

	var lat, lon float64
	for _, corner := range []string{"UL", "UR", "LL", "LR"} {
		cLat, err := m.number("CORNER_" + corner + "_LAT_PRODUCT")
		if err != nil {
			return model.Scene{}, err
		}
		cLon, err := m.number("CORNER_" + corner + "_LON_PRODUCT")
		if err != nil {
			return model.Scene{}, err
		}
		lat += cLat / 4
		lon += cLon / 4
	}

	scene := model.Scene{
		ID:         m.values["LANDSAT_PRODUCT_ID"],
		AcquiredAt: acquired,
		Satellite:  SpacecraftName(m.values["SPACECRAFT_ID"]),
		Latitude:   lat,
		Longitude:  lon,
		Path:       path,
		Row:        row,
		CloudCover: cloud,
	}
	if q, err := m.integer("IMAGE_QUALITY_TIRS"); err == nil {
		scene.ImageQuality = q
	} else if q, err := m.integer("IMAGE_QUALITY_OLI"); err == nil {
		scene.ImageQuality = q
	}
	return scene, nil
}

func (m *MTL) acquiredAt() (time.Time, error) {
	date, ok := m.values["DATE_ACQUIRED"]
	if !ok {
		return time.Time{}, fmt.Errorf("DATE_ACQUIRED がありません")
	}
	clock, _, _ := strings.Cut(m.values["SCENE_CENTER_TIME"], ".")
	clock = strings.TrimSuffix(clock, "Z")
	if clock == "" {
		clock = "00:00:00"
	}
	t, err := time.Parse("2006-01-02 15:04:05", date+" "+clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("撮影日時の解析に失敗: %w", err)
	}
	return t.UTC(), nil
}

func (m *MTL) integer(key string) (int, error) {
	v, ok := m.values[key]
	if !ok {
		return 0, fmt.Errorf("%s がありません", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %q", key, v)
	}
	return n, nil
}

func (m *MTL) number(key string) (float64, error) {
	v, ok := m.values[key]
	if !ok {
		return 0, fmt.Errorf("%s がありません", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s の値が不正です: %q", key, v)
	}
	return f, nil
}
