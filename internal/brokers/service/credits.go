package service

// MinTopUpAmount is the smallest accepted credit purchase in USD.
const MinTopUpAmount = 10

// bonusCredits returns the bonus for a top-up amount. Credits are 1:1 with
// USD; larger purchases earn a bonus on top.
func bonusCredits(amount int64) int64 {
	switch {
	case amount >= 1000:
		return 200
	case amount >= 500:
		return 75
	case amount >= 250:
		return 30
	case amount >= 100:
		return 10
	default:
		return 0
	}
}
