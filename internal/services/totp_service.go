package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image/png"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

const totpIssuer = "ShopSmart Pro"

var ErrTOTPNotConfigured = errors.New("two-factor authentication is not set up")

type TOTPService struct {
	UserRepo *repositories.UserRepository
}

func NewTOTPService(userRepo *repositories.UserRepository) *TOTPService {
	return &TOTPService{UserRepo: userRepo}
}

// GenerateSetup creates a new TOTP secret and QR code for the owner. The
// secret is stored immediately but 2FA stays off until a code is verified.
func (s *TOTPService) GenerateSetup(ctx context.Context, user *models.User) (*models.TOTPSetupResponse, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      totpIssuer,
		AccountName: user.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	if err := s.UserRepo.SetTOTPSecret(ctx, user.ID, key.Secret()); err != nil {
		return nil, err
	}

	qrImage, err := key.Image(200, 200)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, qrImage); err != nil {
		return nil, err
	}

	return &models.TOTPSetupResponse{
		Secret:      key.Secret(),
		QRCode:      "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Issuer:      totpIssuer,
		AccountName: user.Email,
	}, nil
}

// VerifyAndEnable checks a code against the stored secret and turns 2FA on
func (s *TOTPService) VerifyAndEnable(ctx context.Context, userID int, code string) error {
	ok, err := s.ValidateCode(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid verification code")
	}
	return s.UserRepo.SetTOTPEnabled(ctx, userID, true)
}

// Disable turns 2FA off after the owner proves possession of a current code
func (s *TOTPService) Disable(ctx context.Context, userID int, code string) error {
	ok, err := s.ValidateCode(ctx, userID, code)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("invalid verification code")
	}
	if err := s.UserRepo.SetTOTPEnabled(ctx, userID, false); err != nil {
		return err
	}
	return s.UserRepo.SetTOTPSecret(ctx, userID, "")
}

// ValidateCode checks a 6-digit code against the stored secret
func (s *TOTPService) ValidateCode(ctx context.Context, userID int, code string) (bool, error) {
	secret, err := s.UserRepo.GetTOTPSecret(ctx, userID)
	if err != nil {
		return false, err
	}
	if secret == "" {
		return false, ErrTOTPNotConfigured
	}
	return totp.Validate(code, secret), nil
}
