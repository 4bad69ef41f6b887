package dto

import (
	"fmt"

	"github.com/SscSPs/karangnongko_farm/internal/core/domain"
)

// NotificationVariant selects how a toast is rendered.
type NotificationVariant string

const (
	VariantDefault     NotificationVariant = "default"
	VariantDestructive NotificationVariant = "destructive"
)

// Notification is the toast returned alongside a mutating response.
type Notification struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Variant     NotificationVariant `json:"variant"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error        string        `json:"error"`
	Notification *Notification `json:"notification,omitempty"`
}

func ok(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDefault}
}

func failure(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDestructive}
}

func GoatAddedNotification(id string) *Notification {
	return ok("Berhasil Menambahkan", fmt.Sprintf("Kambing dengan ID %s telah ditambahkan.", id))
}

func GoatUpdatedNotification(id string) *Notification {
	return ok("Berhasil Mengupdate", fmt.Sprintf("Data kambing dengan ID %s telah diperbarui.", id))
}

func GoatDeletedNotification(id string) *Notification {
	return ok("Berhasil Menghapus", fmt.Sprintf("Kambing dengan ID %s telah dihapus.", id))
}

// FormIncompleteNotification is shown when the goat form fails validation.
func FormIncompleteNotification() *Notification {
	return failure("Formulir belum lengkap", "Silakan isi semua field yang diperlukan.")
}

// CheckinNotification confirms a journal save; updated selects the wording.
func CheckinNotification(date string, updated bool) *Notification {
	if updated {
		return ok("Check-in Updated", fmt.Sprintf("Your check-in for %s has been updated.", domain.LongDate(date)))
	}
	return ok("Check-in Submitted", fmt.Sprintf("Your check-in for %s has been recorded.", domain.LongDate(date)))
}

func LoginFailedNotification() *Notification {
	return failure("Login failed", "Invalid username or password")
}

// LoginErrorNotification is shown when the account source could not be reached.
func LoginErrorNotification() *Notification {
	return failure("Login failed", "An unexpected error occurred")
}

func LoginSuccessNotification(username string) *Notification {
	return ok("Login successful", fmt.Sprintf("Welcome back, %s!", username))
}

func LogoutNotification() *Notification {
	return ok("Logout successful", "You have been logged out")
}

func LogoutFailedNotification() *Notification {
	return failure("Logout failed", "An unexpected error occurred")
}

// OperationFailedNotification is the generic toast for storage or transport failures.
func OperationFailedNotification() *Notification {
	return failure("Terjadi kesalahan", "Silakan coba lagi nanti.")
}
