package notification

import "context"

// メール送信の約束。ベストエフォートで、注文の成否には影響させない
// （呼び出し側がgoroutineで投げ、失敗はログに残すだけ）。
type Notifier interface {
	Notify(ctx context.Context, to string, subject string, htmlBody string) error
}
