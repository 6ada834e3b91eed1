package model

// PostStatus 帖子审核状态
type PostStatus int8

const (
	PostStatusPending   PostStatus = 0 // 待审核
	PostStatusPublished PostStatus = 1 // 已发布
	PostStatusRejected  PostStatus = 2 // 已拒绝
)

// transitions 状态机转移表，未列出的边一律非法。
// Rejected 没有回到 Pending 的边：重新投稿等于一次新的 Submit。
var transitions = map[PostStatus][]PostStatus{
	PostStatusPending:   {PostStatusPublished, PostStatusRejected},
	PostStatusPublished: {},
	PostStatusRejected:  {},
}

// Valid 判断是否为已定义的状态值
func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusPending, PostStatusPublished, PostStatusRejected:
		return true
	}
	return false
}

// CanTransition 判断 s -> target 是否为转移表中定义的边
func (s PostStatus) CanTransition(target PostStatus) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

func (s PostStatus) String() string {
	switch s {
	case PostStatusPending:
		return "pending"
	case PostStatusPublished:
		return "published"
	case PostStatusRejected:
		return "rejected"
	}
	return "unknown"
}
