package models

import "testing"

func TestAvailableCreditUnlimitedWhenLimitZero(t *testing.T) {
	c := &Customer{CreditLimit: 0, CurrentBalance: 5000}
	_, unlimited := c.AvailableCredit()
	if !unlimited {
		t.Fatalf("expected unlimited credit with zero limit")
	}
	if c.IsOverCreditLimit() {
		t.Fatalf("zero limit must never trip the over-limit flag")
	}
}

func TestAvailableCreditWithLimit(t *testing.T) {
	c := &Customer{CreditLimit: 10000, CurrentBalance: 4000}
	amount, unlimited := c.AvailableCredit()
	if unlimited {
		t.Fatalf("expected limited credit")
	}
	if amount != 6000 {
		t.Fatalf("expected available credit 6000, got %v", amount)
	}

	c.CurrentBalance = 12000
	amount, _ = c.AvailableCredit()
	if amount != 0 {
		t.Fatalf("available credit must clamp at zero, got %v", amount)
	}
	if !c.IsOverCreditLimit() {
		t.Fatalf("expected over-limit when balance exceeds limit")
	}
}

func TestPaymentScoreDefaultsToHundred(t *testing.T) {
	c := &Customer{}
	if got := c.PaymentScore(); got != 100 {
		t.Fatalf("expected score 100 with no payments, got %d", got)
	}
}

func TestPaymentScoreRounds(t *testing.T) {
	c := &Customer{OnTimePayments: 2, LatePayments: 1}
	if got := c.PaymentScore(); got != 67 {
		t.Fatalf("expected score 67, got %d", got)
	}
}

func TestUpdateStatsCredit(t *testing.T) {
	c := &Customer{}
	if err := c.UpdateStats(StatKindCredit, 100); err != nil {
		t.Fatalf("update stats failed: %v", err)
	}
	if c.TotalPurchases != 100 {
		t.Fatalf("expected total purchases 100, got %v", c.TotalPurchases)
	}
	if c.TotalTransactions != 1 {
		t.Fatalf("expected 1 transaction, got %d", c.TotalTransactions)
	}
	if c.AverageOrderValue != 100 {
		t.Fatalf("expected average order value 100, got %v", c.AverageOrderValue)
	}
}

func TestUpdateStatsRaisesHighestBalanceWatermark(t *testing.T) {
	c := &Customer{CurrentBalance: 800, HighestBalance: 500}
	if err := c.UpdateStats(StatKindPayment, 200); err != nil {
		t.Fatalf("update stats failed: %v", err)
	}
	if c.HighestBalance != 800 {
		t.Fatalf("expected watermark raised to 800, got %v", c.HighestBalance)
	}

	c.CurrentBalance = 300
	if err := c.UpdateStats(StatKindPayment, 200); err != nil {
		t.Fatalf("update stats failed: %v", err)
	}
	if c.HighestBalance != 800 {
		t.Fatalf("watermark must not drop, got %v", c.HighestBalance)
	}
}

func TestUpdateStatsRejectsNegativeAmount(t *testing.T) {
	c := &Customer{}
	if err := c.UpdateStats(StatKindCredit, -1); err != ErrNegativeAmount {
		t.Fatalf("expected ErrNegativeAmount, got %v", err)
	}
	if err := c.UpdateStats("refund", 10); err != ErrUnknownStatKind {
		t.Fatalf("expected ErrUnknownStatKind, got %v", err)
	}
	if c.TotalTransactions != 0 {
		t.Fatalf("rejected calls must not mutate counters")
	}
}

func TestGSTAndPANValidation(t *testing.T) {
	if !ValidGSTNumber("27AAPFU0939F1ZV") {
		t.Fatalf("expected valid GSTIN to pass")
	}
	if ValidGSTNumber("27AAPFU0939F1XV") {
		t.Fatalf("GSTIN without literal Z must fail")
	}
	if ValidGSTNumber("27aapfu0939f1zv") {
		t.Fatalf("lowercase GSTIN must fail")
	}
	if !ValidPANNumber("AAPFU0939F") {
		t.Fatalf("expected valid PAN to pass")
	}
	if ValidPANNumber("AAPF00939F") {
		t.Fatalf("malformed PAN must fail")
	}
}
