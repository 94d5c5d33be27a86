package celestrak

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"LandWatch-App/internal/domain/model"
)

const cacheSize = 64

// ErrNoGPData Celestrakが該当カタログ番号の軌道要素を持っていない
var ErrNoGPData = errors.New("軌道要素が見つかりません")

// TLEProvider Celestrak GP API からTLEを取得する実装
// 取得結果はカタログ番号ごとにTTL付きでキャッシュする
type TLEProvider struct {
	baseURL    string
	httpClient *http.Client
	cache      *expirable.LRU[int, *model.TLE]
}

// NewTLEProvider 新しいプロバイダを生成する
func NewTLEProvider(baseURL string, ttl time.Duration) *TLEProvider {
	return &TLEProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      expirable.NewLRU[int, *model.TLE](cacheSize, nil, ttl),
	}
}

// FetchTLE カタログ番号のTLEを返す（キャッシュ優先）
func (p *TLEProvider) FetchTLE(ctx context.Context, catalog int) (*model.TLE, error) {
	if tle, ok := p.cache.Get(catalog); ok {
		return tle, nil
	}

	reqURL, err := p.buildURL(catalog)
	if err != nil {
		return nil, fmt.Errorf("URLの構築に失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TLEの取得に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Celestrakからエラーステータスが返されました: %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("レスポンスの読み込みに失敗: %w", err)
	}

	tle, err := ParseTLE(string(body))
	if err != nil {
		return nil, fmt.Errorf("catalog %d: %w", catalog, err)
	}
	if tle.CatalogNumber == 0 {
		tle.CatalogNumber = catalog
	}

	p.cache.Add(catalog, tle)
	return tle, nil
}

func (p *TLEProvider) buildURL(catalog int) (string, error) {
	base, err := url.Parse(p.baseURL)
	if err != nil {
		return "", err
	}
	q := base.Query()
	q.Set("CATNR", strconv.Itoa(catalog))
	q.Set("FORMAT", "TLE")
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// ParseTLE 名称行付き3行形式、または2行形式のTLEを解析する
func ParseTLE(text string) (*model.TLE, error) {
	var lines []string
	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \r\t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if len(lines) == 1 && strings.Contains(lines[0], "No GP data found") {
		return nil, ErrNoGPData
	}

	tle := &model.TLE{}
	switch {
	case len(lines) >= 3 && strings.HasPrefix(lines[1], "1 ") && strings.HasPrefix(lines[2], "2 "):
		tle.Name = strings.TrimSpace(lines[0])
		tle.Line1, tle.Line2 = lines[1], lines[2]
	case len(lines) >= 2 && strings.HasPrefix(lines[0], "1 ") && strings.HasPrefix(lines[1], "2 "):
		tle.Line1, tle.Line2 = lines[0], lines[1]
	default:
		return nil, fmt.Errorf("TLEの形式が不正です")
	}

	if len(tle.Line1) < 69 || len(tle.Line2) < 69 {
		return nil, fmt.Errorf("TLEの行が短すぎます")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(tle.Line1[2:7])); err == nil {
		tle.CatalogNumber = n
	}
	if tle.Name == "" {
		tle.Name = strconv.Itoa(tle.CatalogNumber)
	}
	return tle, nil
}
