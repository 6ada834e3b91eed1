package consts

const (
	DefaultAvatarURL = "default_avatar.png"
)

const (
	// ClueBodyLimit 送入AI的正文前缀上限（按 rune 计）
	ClueBodyLimit = 4000
	// ClueOutputLimit 检索线索长度上限（按 rune 计）
	ClueOutputLimit = 120
)

const (
	SearchModeKeyword = "keyword"
	SearchModeAI      = "ai"
)

// 通知类型
const (
	NoticeTypeApproved int8 = 1
	NoticeTypeRejected int8 = 2
)
