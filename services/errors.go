package services

import "errors"

// validationError is a user-facing rejection raised before any network call.
type validationError string

func (e validationError) Error() string { return string(e) }

// notFoundError marks local lookups that found nothing.
type notFoundError string

func (e notFoundError) Error() string { return string(e) }

var (
	ErrIncompleteSelection = validationError("Please select a date, time and seat")
	ErrInsufficientBalance = validationError("Insufficient wallet balance. Please top up your wallet.")
	ErrInvalidPromo        = validationError("Invalid promo code")
	ErrSeatUnavailable     = validationError("This seat is not available")
	ErrUnknownTime         = validationError("This time is not on the schedule")
	ErrInvalidDate         = validationError("Please pick a date within the next 30 days")
	ErrUnknownService      = validationError("Service is not in your selection")
	ErrInvalidQuantity     = validationError("Quantity cannot be negative")
	ErrEmptySelection      = validationError("Select at least one service")
	ErrInvalidStatus       = validationError("Unknown booking status")
	ErrInvalidRating       = validationError("Rating must be between 1 and 5")
	ErrNotReviewable       = validationError("Only completed bookings can be reviewed")
	ErrInvalidAmount       = validationError("Enter an amount greater than zero")
	ErrInvalidPhone        = validationError("Enter a valid mobile number")
	ErrInvalidOTP          = validationError("Enter the code we sent you")
	ErrNoReferralCode      = validationError("Your account has no referral code yet")
	ErrInvalidLocation     = validationError("Location coordinates are out of range")

	ErrNoCheckout           = notFoundError("No checkout in progress")
	ErrBookingNotFound      = notFoundError("Booking not found")
	ErrNotificationNotFound = notFoundError("Notification not found")
	ErrPaymentNotWatched    = notFoundError("Payment is not being tracked")

	ErrNotLoggedIn     = errors.New("please log in to continue")
	ErrMapsUnavailable = errors.New("maps service is not configured")
	ErrInvitesDisabled = errors.New("invites are not configured")
)

func IsValidation(err error) bool {
	var v validationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf notFoundError
	return errors.As(err, &nf)
}
