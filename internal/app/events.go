package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/SandeepBatta/OrigamiAI/internal/pubsub"
)

const subscriberSendTimeout = 2 * time.Second

// Subscribe 返回 userID 新写入记录的通道。消费者跟不上时丢弃记录，
// ctx 结束或应用关闭时通道关闭。
func (app *App) Subscribe(ctx context.Context, userID string) <-chan ledger.Turn {
	out := make(chan ledger.Turn, 16)
	forwardTurns(ctx, app.subscribersWG, userID, app.Ledger.Subscribe, out)
	return out
}

func forwardTurns(
	ctx context.Context,
	wg *sync.WaitGroup,
	userID string,
	subscriber func(context.Context) <-chan pubsub.Event[ledger.Turn],
	outputCh chan<- ledger.Turn,
) {
	subCh := subscriber(ctx)
	wg.Go(func() {
		defer close(outputCh)
		sendTimer := time.NewTimer(0)
		<-sendTimer.C
		defer sendTimer.Stop()

		for {
			select {
			case event, ok := <-subCh:
				if !ok {
					slog.Debug("订阅通道已关闭", "user", userID)
					return
				}
				if event.Payload.UserID != userID {
					continue
				}
				if !sendTimer.Stop() {
					select {
					case <-sendTimer.C:
					default:
					}
				}
				sendTimer.Reset(subscriberSendTimeout)

				select {
				case outputCh <- event.Payload:
				case <-sendTimer.C:
					slog.Debug("记录因消费者缓慢而丢弃", "user", userID, "id", event.Payload.ID)
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				slog.Debug("订阅已取消", "user", userID)
				return
			}
		}
	})
}
