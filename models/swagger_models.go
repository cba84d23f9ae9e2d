package models

// APIResponse 通用API响应
type APIResponse struct {
	Code    int         `json:"code" example:"0"`
	Message string      `json:"message" example:"success"`
	Data    interface{} `json:"data,omitempty"`
}

// ChatRequest 聊天请求体
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=4000" example:"I have finals next week and can't sleep"`
	Emotion string `json:"emotion,omitempty" validate:"omitempty,oneof=anxious stressed sad tired angry overwhelmed neutral" example:"anxious"`
}

// ChatResponse 聊天响应
type ChatResponse struct {
	Code    int       `json:"code" example:"0"`
	Message string    `json:"message" example:"success"`
	Data    ChatReply `json:"data"`
}

// StressDetectRequest 压力检测请求体，image为base64或data URL
type StressDetectRequest struct {
	Image string `json:"image" validate:"required" example:"data:image/jpeg;base64,/9j/4AAQSkZJRg..."`
}

// StressDetectResponse 压力检测响应
type StressDetectResponse struct {
	Code    int                `json:"code" example:"0"`
	Message string             `json:"message" example:"success"`
	Data    StressDetectResult `json:"data"`
}

// ContentListResponse 内容列表响应
type ContentListResponse struct {
	Code    int           `json:"code" example:"0"`
	Message string        `json:"message" example:"success"`
	Data    []ContentItem `json:"data"`
}

// BundleResponse 推荐结果响应
type BundleResponse struct {
	Code    int                  `json:"code" example:"0"`
	Message string               `json:"message" example:"success"`
	Data    RecommendationBundle `json:"data"`
}

// MoodRequest 心情记录请求体
type MoodRequest struct {
	MoodLevel int      `json:"mood_level" validate:"required,min=1,max=5" example:"3"`
	MoodEmoji string   `json:"mood_emoji" validate:"required" example:"😐"`
	Feelings  []string `json:"feelings,omitempty" example:"tired,anxious"`
	Notes     string   `json:"notes,omitempty" validate:"max=2000"`
}

// JournalRequest 日记请求体
type JournalRequest struct {
	Title   string `json:"title" validate:"max=200" example:"Exam week"`
	Content string `json:"content" validate:"required" example:"Studying all night for the test"`
}

// BreatheRequest 呼吸练习请求体
type BreatheRequest struct {
	Pattern         string `json:"pattern" validate:"required,max=50" example:"4-7-8"`
	CyclesCompleted int    `json:"cycles_completed" validate:"min=0" example:"4"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0" example:"76"`
}

// JournalUpdateRequest 日记更新请求体，未提供的字段保持不变
type JournalUpdateRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Content *string `json:"content,omitempty"`
}
