package auth

import "github.com/baharkarakas/ong-backend/internal/apperr"

// CheckOwnership allows the operation only when the requester owns the record.
func CheckOwnership(ownerID, requestingUserID string) error {
	if requestingUserID == "" || ownerID != requestingUserID {
		return apperr.ErrNotOwner
	}
	return nil
}
