package services

import (
	"context"
	"errors"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
	"github.com/San7122/shopsmart-pro-sub001/internal/repositories"
)

type CustomerService struct {
	Repo *repositories.CustomerRepository
}

func NewCustomerService(repo *repositories.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func validateCustomerRequest(name, phone, gst, pan string, ctype models.CustomerType, terms models.PaymentTerms, creditLimit float64, customDays int) error {
	if name == "" || phone == "" {
		return errors.New("name and phone are required")
	}
	if ctype != "" && !models.ValidCustomerType(ctype) {
		return errors.New("invalid customer type")
	}
	if terms != "" && !models.ValidPaymentTerms(terms) {
		return errors.New("invalid payment terms")
	}
	if terms == models.PaymentTermsCustom && customDays <= 0 {
		return errors.New("custom payment terms require custom_payment_days")
	}
	if creditLimit < 0 {
		return errors.New("credit limit cannot be negative")
	}
	if gst != "" && !models.ValidGSTNumber(gst) {
		return errors.New("invalid GST number format")
	}
	if pan != "" && !models.ValidPANNumber(pan) {
		return errors.New("invalid PAN number format")
	}
	return nil
}

func (s *CustomerService) CreateCustomer(ctx context.Context, userID int, req *models.CreateCustomerRequest) (*models.Customer, error) {
	if err := validateCustomerRequest(req.Name, req.Phone, req.GSTNumber, req.PANNumber,
		req.CustomerType, req.PaymentTerms, req.CreditLimit, req.CustomPaymentDays); err != nil {
		return nil, err
	}

	// Phone is the natural key within a shop
	if existing, err := s.Repo.GetByPhone(ctx, userID, req.Phone); err == nil && existing != nil {
		return nil, errors.New("a customer with this phone already exists")
	}

	customerType := req.CustomerType
	if customerType == "" {
		customerType = models.CustomerTypeIndividual
	}
	paymentTerms := req.PaymentTerms
	if paymentTerms == "" {
		paymentTerms = models.PaymentTermsImmediate
	}

	customer := &models.Customer{
		UserID:            userID,
		Name:              req.Name,
		Phone:             req.Phone,
		AlternatePhone:    req.AlternatePhone,
		Email:             req.Email,
		CustomerType:      customerType,
		GSTNumber:         req.GSTNumber,
		PANNumber:         req.PANNumber,
		TaxPreference:     req.TaxPreference,
		CreditLimit:       req.CreditLimit,
		PaymentTerms:      paymentTerms,
		CustomPaymentDays: req.CustomPaymentDays,
		IsActive:          true,
	}

	if err := s.Repo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

func (s *CustomerService) GetCustomer(ctx context.Context, userID, id int) (*models.Customer, error) {
	return s.Repo.Get(ctx, userID, id)
}

func (s *CustomerService) SearchByPhone(ctx context.Context, userID int, phone string) (*models.Customer, error) {
	if phone == "" {
		return nil, errors.New("phone number is required")
	}
	return s.Repo.GetByPhone(ctx, userID, phone)
}

func (s *CustomerService) ListCustomers(ctx context.Context, userID int) ([]*models.Customer, error) {
	return s.Repo.List(ctx, userID)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, userID, id int, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	if err := validateCustomerRequest(req.Name, req.Phone, req.GSTNumber, req.PANNumber,
		req.CustomerType, req.PaymentTerms, req.CreditLimit, req.CustomPaymentDays); err != nil {
		return nil, err
	}

	customer, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	customer.Name = req.Name
	customer.Phone = req.Phone
	customer.AlternatePhone = req.AlternatePhone
	customer.Email = req.Email
	if req.CustomerType != "" {
		customer.CustomerType = req.CustomerType
	}
	customer.GSTNumber = req.GSTNumber
	customer.PANNumber = req.PANNumber
	customer.TaxPreference = req.TaxPreference
	customer.CreditLimit = req.CreditLimit
	if req.PaymentTerms != "" {
		customer.PaymentTerms = req.PaymentTerms
	}
	customer.CustomPaymentDays = req.CustomPaymentDays

	if err := s.Repo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeactivateCustomer soft-deletes: history stays for the ledger
func (s *CustomerService) DeactivateCustomer(ctx context.Context, userID, id int) error {
	customer, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return err
	}
	customer.IsActive = false
	return s.Repo.Update(ctx, customer)
}

func (s *CustomerService) GetSummary(ctx context.Context, userID, id int) (*models.CustomerSummary, error) {
	customer, err := s.Repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return models.NewCustomerSummary(customer), nil
}
