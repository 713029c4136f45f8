package services

import (
	"math"
	"testing"
	"time"

	"github.com/San7122/shopsmart-pro-sub001/internal/models"
)

var scheduleTestNow = time.Date(2026, time.June, 1, 10, 0, 0, 0, time.UTC)

func TestBuildInstallmentsSumEqualsTotal(t *testing.T) {
	parts := buildInstallments(1000, 3, scheduleTestNow, "monthly")
	if len(parts) != 3 {
		t.Fatalf("expected 3 installments, got %d", len(parts))
	}

	var sum float64
	for _, p := range parts {
		sum += p.Amount
	}
	if math.Abs(sum-1000) > 0.001 {
		t.Fatalf("installments sum to %v, want 1000", sum)
	}
}

func TestBuildInstallmentsRemainderOnLast(t *testing.T) {
	parts := buildInstallments(100, 3, scheduleTestNow, "monthly")

	if parts[0].Amount != 33.33 || parts[1].Amount != 33.33 {
		t.Fatalf("expected 33.33 per installment, got %v and %v", parts[0].Amount, parts[1].Amount)
	}
	if parts[2].Amount != 33.34 {
		t.Fatalf("expected 33.34 on last installment, got %v", parts[2].Amount)
	}
}

func TestBuildInstallmentsNumbering(t *testing.T) {
	parts := buildInstallments(500, 5, scheduleTestNow, "weekly")
	for i, p := range parts {
		if p.Number != i+1 {
			t.Fatalf("installment %d numbered %d", i, p.Number)
		}
		if p.Status != models.ScheduleStatusPending {
			t.Fatalf("installment %d status %s, want pending", i, p.Status)
		}
	}
}

func TestBuildInstallmentsWeeklySpacing(t *testing.T) {
	parts := buildInstallments(300, 3, scheduleTestNow, "weekly")
	for i := 1; i < len(parts); i++ {
		gap := parts[i].DueDate.Sub(parts[i-1].DueDate)
		if gap != 7*24*time.Hour {
			t.Fatalf("week %d gap %v, want 168h", i, gap)
		}
	}
}

func TestBuildInstallmentsBiweeklySpacing(t *testing.T) {
	parts := buildInstallments(200, 2, scheduleTestNow, "biweekly")
	gap := parts[1].DueDate.Sub(parts[0].DueDate)
	if gap != 14*24*time.Hour {
		t.Fatalf("gap %v, want 336h", gap)
	}
}

func TestBuildInstallmentsMonthlySpacing(t *testing.T) {
	parts := buildInstallments(200, 2, scheduleTestNow, "monthly")
	want := scheduleTestNow.AddDate(0, 1, 0)
	if !parts[1].DueDate.Equal(want) {
		t.Fatalf("second due %v, want %v", parts[1].DueDate, want)
	}
}

func TestBuildInstallmentsSingle(t *testing.T) {
	parts := buildInstallments(750.50, 1, scheduleTestNow, "monthly")
	if len(parts) != 1 || parts[0].Amount != 750.50 {
		t.Fatalf("expected one installment of 750.50, got %+v", parts)
	}
}
