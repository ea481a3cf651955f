package domain

import "time"

// User is a board member holding a spendable noice balance. Username and
// createdAt are immutable; the display name may change.
type User struct {
	id          UserID
	username    Username
	displayName UserDisplayName
	noiceAmount NoiceAmount
	rupeeAmount RupeeAmount
	createdAt   time.Time
}

// NewUser creates a user with a generated id and empty balances.
func NewUser(username Username, displayName UserDisplayName) User {
	return User{
		id:          GenerateUserID(),
		username:    username,
		displayName: displayName,
		createdAt:   time.Now().UTC(),
	}
}

// RestoreUser rebuilds a user from stored parts.
func RestoreUser(id UserID, username Username, displayName UserDisplayName, noice NoiceAmount, rupee RupeeAmount, createdAt time.Time) User {
	return User{
		id:          id,
		username:    username,
		displayName: displayName,
		noiceAmount: noice,
		rupeeAmount: rupee,
		createdAt:   createdAt,
	}
}

func (u User) ID() UserID                   { return u.id }
func (u User) Username() Username           { return u.username }
func (u User) DisplayName() UserDisplayName { return u.displayName }
func (u User) NoiceAmount() NoiceAmount     { return u.noiceAmount }
func (u User) RupeeAmount() RupeeAmount     { return u.rupeeAmount }
func (u User) CreatedAt() time.Time         { return u.createdAt }

// AddNoice returns a copy with the amount credited. It fails when the
// balance would exceed MaxNoiceAmount.
func (u User) AddNoice(amount NoiceAmount) (User, error) {
	next, err := u.noiceAmount.Add(amount)
	if err != nil {
		return User{}, err
	}
	u.noiceAmount = next
	return u, nil
}

// SubtractNoice returns a copy with the amount debited. It fails with
// ErrInsufficientNoice when the balance does not cover the amount; the
// receiver is left untouched either way.
func (u User) SubtractNoice(amount NoiceAmount) (User, error) {
	if !u.HasEnoughNoice(amount) {
		return User{}, ErrInsufficientNoice
	}
	next, err := u.noiceAmount.Subtract(amount)
	if err != nil {
		return User{}, err
	}
	u.noiceAmount = next
	return u, nil
}

// HasEnoughNoice reports whether the balance covers the amount.
func (u User) HasEnoughNoice(amount NoiceAmount) bool {
	return u.noiceAmount.AtLeast(amount)
}

// WithDisplayName returns a copy with a new display name. Validation
// lives in NewUserDisplayName, so callers pass an already-valid value.
func (u User) WithDisplayName(name UserDisplayName) User {
	u.displayName = name
	return u
}

// Equal reports identity equality by user id.
func (u User) Equal(other User) bool { return u.id == other.id }
