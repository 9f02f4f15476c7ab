package app

import (
	"context"
	"time"

	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
)

// Export 是一个用户全部记录的导出格式
type Export struct {
	UserID     string        `json:"user_id" yaml:"user_id"`
	ExportedAt time.Time     `json:"exported_at" yaml:"exported_at"`
	Turns      []ledger.Turn `json:"turns" yaml:"turns"`
}

// Export 按账本顺序导出用户的全部记录。
func (app *App) Export(ctx context.Context, userID string, now time.Time) (Export, error) {
	turns, err := app.Ledger.ListByUser(ctx, userID)
	if err != nil {
		return Export{}, err
	}
	return Export{UserID: userID, ExportedAt: now.UTC(), Turns: turns}, nil
}
