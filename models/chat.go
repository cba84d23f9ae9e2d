package models

// 对话角色
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// ChatTurn 一轮对话
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Sentiment 消息的情绪倾向
type Sentiment struct {
	Label     string  `json:"label"`     // negative/neutral/positive
	Intensity float64 `json:"intensity"` // 0-1
}

// ChatReply 聊天回复及推荐内容
type ChatReply struct {
	Message         string               `json:"message"`
	Recommendations RecommendationBundle `json:"recommendations"`
	Keywords        []string             `json:"keywords"`
	Sentiment       Sentiment            `json:"sentiment"`
}
