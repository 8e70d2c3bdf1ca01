package generator

import (
	"time"

	"commerce-seeder/internal/model"
)

const (
	paymentWindow        = 15 * time.Minute
	paymentWindowJitter  = 10 // extra whole minutes, inclusive
	timeoutProbability   = 0.8
	pendingNudgeChance   = 0.3
	minTimeoutLagSeconds = 60
	maxTimeoutLagSeconds = 3600
	olderOrderChance     = 0.7
)

// StatusWeight is one outcome of a StatusDistribution
type StatusWeight struct {
	Status model.OrderStatus
	Weight int
}

// StatusDistribution is a discrete distribution over drawn order statuses
type StatusDistribution []StatusWeight

// DefaultStatusDistribution is the status mix of seeded orders.
// CANCELED_TIMEOUT is never drawn; it only arises from DeriveFinalStatus.
var DefaultStatusDistribution = StatusDistribution{
	{Status: model.OrderStatusPendingPayment, Weight: 4},
	{Status: model.OrderStatusPending, Weight: 3},
	{Status: model.OrderStatusShipped, Weight: 6},
	{Status: model.OrderStatusCompleted, Weight: 5},
	{Status: model.OrderStatusCanceled, Weight: 5},
}

// Total is the sum of all weights
func (d StatusDistribution) Total() int {
	total := 0
	for _, w := range d {
		total += w.Weight
	}
	return total
}

// probability of drawing status
func (d StatusDistribution) probability(status model.OrderStatus) float64 {
	total := d.Total()
	if total == 0 {
		return 0
	}
	for _, w := range d {
		if w.Status == status {
			return float64(w.Weight) / float64(total)
		}
	}
	return 0
}

// Draw picks a status proportionally to its weight
func (d StatusDistribution) Draw(rng Rand) model.OrderStatus {
	n := rng.IntN(d.Total())
	for _, w := range d {
		if n < w.Weight {
			return w.Status
		}
		n -= w.Weight
	}
	return d[len(d)-1].Status
}

// OrderTimeline is the final status and timestamps of a seeded order
type OrderTimeline struct {
	Status    model.OrderStatus
	UpdatedAt time.Time
	ExpiresAt *time.Time
	// Deadline is the payment expiry computed for a drawn PENDING_PAYMENT,
	// kept even when the order timed out and ExpiresAt was cleared.
	Deadline time.Time
}

// DrawCreatedAt backdates an order: mostly 1 to 90 days old, otherwise
// within the last 24 hours. The result has whole-second precision.
func DrawCreatedAt(now time.Time, rng Rand) time.Time {
	var created time.Time
	if chance(rng, olderOrderChance) {
		created = timeBetween(rng, now.AddDate(0, 0, -90), now.AddDate(0, 0, -1))
	} else {
		created = timeBetween(rng, now.Add(-24*time.Hour), now)
	}
	return created.Truncate(time.Second)
}

// DeriveFinalStatus turns a drawn status into the stored one.
//
// A PENDING_PAYMENT order gets a payment deadline 15 to 25 minutes after
// creation. If the deadline already passed it usually becomes
// CANCELED_TIMEOUT with no expiry and an update time at least one second
// after the deadline but not after now. Every other status gets an update
// time in [createdAt, now].
func DeriveFinalStatus(drawn model.OrderStatus, createdAt, now time.Time, rng Rand) OrderTimeline {
	// stored timestamps have whole-second precision
	now = now.Truncate(time.Second)
	timeline := OrderTimeline{Status: drawn, UpdatedAt: createdAt}

	if drawn != model.OrderStatusPendingPayment {
		timeline.UpdatedAt = timeBetween(rng, createdAt, now)
		return timeline
	}

	deadline := createdAt.Add(paymentWindow + time.Duration(rng.IntN(paymentWindowJitter+1))*time.Minute)
	timeline.Deadline = deadline

	if deadline.Before(now) && chance(rng, timeoutProbability) {
		lag := minTimeoutLagSeconds + rng.IntN(maxTimeoutLagSeconds-minTimeoutLagSeconds+1)
		updated := deadline.Add(time.Duration(lag) * time.Second)
		if updated.After(now) {
			// whole seconds in (deadline, now]
			window := max(1, int64(now.Sub(deadline)/time.Second))
			updated = deadline.Add(time.Duration(1+rng.Int64N(window)) * time.Second)
			if updated.After(now) {
				updated = now
			}
		}
		timeline.Status = model.OrderStatusCanceledTimeout
		timeline.UpdatedAt = updated
		return timeline
	}

	timeline.ExpiresAt = &deadline
	if chance(rng, pendingNudgeChance) {
		end := now
		if deadline.Before(end) {
			end = deadline
		}
		timeline.UpdatedAt = timeBetween(rng, createdAt, end)
	}
	return timeline
}
