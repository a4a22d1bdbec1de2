package internal

import (
	"golang.org/x/xerrors"
)

var (
	ErrReadConfigurationFailure       = xerrors.New("Failed to read configuration")
	ErrLoadConfigurationFailure       = xerrors.New("Failed to load configuration")
	ErrConfigurationValidateToken     = xerrors.New("Configuration missing valid token")
	ErrConfigurationValidatePublicKey = xerrors.New("Configuration missing valid public key")
	ErrConfigurationValidateHTTP      = xerrors.New("Configuration missing valid HTTP Host")
	ErrConfigurationValidateConsumer  = xerrors.New("Configuration has unknown consumer type")
	ErrConfigurationValidateState     = xerrors.New("Configuration has unknown state type")
)

var (
	// ErrInvalidSignature is returned when an interaction request is not signed by discord.
	ErrInvalidSignature = xerrors.New("Invalid request signature")

	// ErrInteractionResponseExpired is returned when a handler responds after
	// the interactions endpoint has already answered the request.
	ErrInteractionResponseExpired = xerrors.New("Interaction response window has expired")
)
