package notification

import (
	"context"

	"github.com/labstack/gommon/log"
)

// SMTP未設定のとき（ローカル開発など）に使う。送らずにログに出すだけ
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(ctx context.Context, to string, subject string, htmlBody string) error {
	log.Infof("mail (not sent): to=%s subject=%q", to, subject)
	return nil
}
