package service

import "travelbook/internal/apperror"

// requireIdentity fails when the operation runs without a verified user.
func requireIdentity(userID string) error {
	if userID == "" {
		return apperror.Unauthenticated("Not logged in. Please login")
	}
	return nil
}

// requireOwner fails unless userID is the owner of the resource.
func requireOwner(ownerID, userID, message string) error {
	if err := requireIdentity(userID); err != nil {
		return err
	}
	if ownerID != userID {
		return apperror.Forbidden(message)
	}
	return nil
}
