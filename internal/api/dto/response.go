package dto

// Response 统一响应封装。Notice 为非致命降级提示，如线索生成失败
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
	Notice  string      `json:"notice,omitempty"`
}
