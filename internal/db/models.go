// 由 sqlc 自动生成的代码。请勿手动编辑。
// 版本信息:
//   sqlc v1.30.0

package db

// Turn 表示账本中的一条对话记录，写入后不可修改
type Turn struct {
	ID        int64  `json:"id"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Role      string `json:"role"`       // user 或 assistant
	Kind      string `json:"kind"`       // text 或 image
	Content   string `json:"content"`    // 文本内容或图片说明
	Url       string `json:"url"`        // 图片地址，文本记录为空
	CreatedAt int64  `json:"created_at"` // 创建时间戳（Unix 秒，UTC）
}
