package ledger

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidTurn 表示调用方传入了违反不变量的记录，与存储故障无关。
var ErrInvalidTurn = errors.New("无效的对话记录")

// StorageError 包装账本读写时的底层存储错误。
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("账本%s失败: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Timeout 报告失败是否由截止时间引起。
func (e *StorageError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
