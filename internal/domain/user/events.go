package user

import "time"

// RegisteredEvent is emitted after a successful registration so the
// notifier can send the welcome mail. Delivery is fire-and-forget.
type RegisteredEvent struct {
	UserID     string
	Email      string
	Name       string
	OccurredAt time.Time
}

func (RegisteredEvent) EventName() string { return "user.registered" }

func NewRegisteredEvent(u *User) RegisteredEvent {
	return RegisteredEvent{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		OccurredAt: time.Now().UTC(),
	}
}

// ResetRequestedEvent is emitted when a password reset token is issued.
type ResetRequestedEvent struct {
	UserID     string
	Email      string
	Name       string
	ResetToken string
	OccurredAt time.Time
}

func (ResetRequestedEvent) EventName() string { return "user.reset_requested" }

func NewResetRequestedEvent(u *User, token string) ResetRequestedEvent {
	return ResetRequestedEvent{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		ResetToken: token,
		OccurredAt: time.Now().UTC(),
	}
}

// PurchasedEvent is emitted when a cart is frozen into a history entry.
type PurchasedEvent struct {
	UserID     string
	Email      string
	Name       string
	TotalPrice int64
	OccurredAt time.Time
}

func (PurchasedEvent) EventName() string { return "user.purchased" }

func NewPurchasedEvent(u *User, totalPrice int64) PurchasedEvent {
	return PurchasedEvent{
		UserID:     u.ID,
		Email:      u.Email,
		Name:       u.Name,
		TotalPrice: totalPrice,
		OccurredAt: time.Now().UTC(),
	}
}
