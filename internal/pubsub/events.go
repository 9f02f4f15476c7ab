package pubsub

import "context"

// 账本只追加，因此只有创建事件。
const CreatedEvent EventType = "created"

// Subscriber 由可以被订阅的服务实现。
type Subscriber[T any] interface {
	Subscribe(context.Context) <-chan Event[T]
}

type (
	// EventType 事件类型标识符
	EventType string

	// Event 表示资源生命周期中的一个事件
	Event[T any] struct {
		Type    EventType
		Payload T
	}

	// Publisher 发布者接口
	Publisher[T any] interface {
		Publish(EventType, T)
	}
)
