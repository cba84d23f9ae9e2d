package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"serenity/config"
	"serenity/logger"
	"serenity/models"
)

// labelAliases 不同模型输出的标签统一为固定标签
var labelAliases = map[string]string{
	"anger":     "angry",
	"disgusted": "disgust",
	"fearful":   "fear",
	"scared":    "fear",
	"happiness": "happy",
	"joy":       "happy",
	"calm":      "neutral",
	"sadness":   "sad",
	"surprised": "surprise",
}

// maxClassifierBody 分类服务响应体上限
const maxClassifierBody = 1 << 20

// ClassifierClient 通过HTTP调用外部表情分类服务
type ClassifierClient struct {
	url    string
	apiKey string
	client *http.Client
}

// NewClassifierClient 根据配置创建分类客户端
func NewClassifierClient(cfg *config.Config) *ClassifierClient {
	timeout := time.Duration(cfg.Stress.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second // 默认超时
	}
	return &ClassifierClient{
		url:    cfg.Stress.ClassifierURL,
		apiKey: cfg.Stress.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

// Classify 上传图片并解析各情绪概率
func (c *ClassifierClient) Classify(ctx context.Context, image []byte) (models.EmotionVector, error) {
	if c.url == "" {
		return nil, fmt.Errorf("classifier url not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(image))
	if err != nil {
		return nil, fmt.Errorf("创建分类请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", http.DetectContentType(image))
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("分类服务连接失败: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxClassifierBody))
	if err != nil {
		return nil, fmt.Errorf("读取分类响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		logger.Error("分类服务返回错误状态码", "status_code", resp.StatusCode, "response", string(body))
		return nil, fmt.Errorf("分类服务错误 (HTTP %d)", resp.StatusCode)
	}

	vector, err := ParseEmotionVector(body)
	if err != nil {
		return nil, err
	}
	logger.Debug("分类结果", "emotions", vector)
	return vector, nil
}

// ParseEmotionVector 解析 [{"label":..,"score":..}] 或 {"emotions":{label:p}} 两种格式
func ParseEmotionVector(body []byte) (models.EmotionVector, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("解析分类响应失败: invalid json")
	}

	root := gjson.ParseBytes(body)
	raw := make(map[string]float64)
	switch {
	case root.IsArray():
		// 部分推理服务会多包一层数组
		if first := root.Get("0"); first.IsArray() {
			root = first
		}
		root.ForEach(func(_, item gjson.Result) bool {
			if label := item.Get("label").String(); label != "" {
				raw[label] += item.Get("score").Float()
			}
			return true
		})
	case root.Get("emotions").IsObject():
		root.Get("emotions").ForEach(func(key, value gjson.Result) bool {
			raw[key.String()] += value.Float()
			return true
		})
	}

	vector := make(models.EmotionVector, len(models.EmotionLabels))
	for _, label := range models.EmotionLabels {
		vector[label] = 0
	}
	matched := 0
	for label, p := range raw {
		name := strings.ToLower(strings.TrimSpace(label))
		if alias, ok := labelAliases[name]; ok {
			name = alias
		}
		if _, ok := vector[name]; !ok {
			continue
		}
		vector[name] += p
		matched++
	}
	if matched == 0 {
		return nil, fmt.Errorf("分类响应中没有可识别的情绪")
	}
	return vector, nil
}
