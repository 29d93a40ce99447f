package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corpvm/vendorhub/internal/domain/department"
	"github.com/corpvm/vendorhub/internal/domain/finance"
	"github.com/corpvm/vendorhub/internal/http/handlers"
)

type fakeFinanceRepo struct {
	createAllocationFn func(ctx context.Context, req finance.CreateAllocationRequest) (finance.Allocation, error)
	listFn             func(ctx context.Context) ([]finance.AllocationRow, error)
	listWithExpensesFn func(ctx context.Context) ([]finance.AllocationWithExpenses, error)
	recordExpenseFn    func(ctx context.Context, allocationID int64, amountSpent float64) (int64, error)
	dashboardFn        func(ctx context.Context) (finance.Dashboard, error)
}

func (f *fakeFinanceRepo) CreateAllocation(ctx context.Context, req finance.CreateAllocationRequest) (finance.Allocation, error) {
	if f.createAllocationFn != nil {
		return f.createAllocationFn(ctx, req)
	}
	return finance.Allocation{ID: 1, DepartmentID: req.DepartmentID, VendorID: req.VendorID, AmountAllocated: req.Amount}, nil
}

func (f *fakeFinanceRepo) ListAllocations(ctx context.Context) ([]finance.AllocationRow, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return []finance.AllocationRow{}, nil
}

func (f *fakeFinanceRepo) ListWithExpenses(ctx context.Context) ([]finance.AllocationWithExpenses, error) {
	if f.listWithExpensesFn != nil {
		return f.listWithExpensesFn(ctx)
	}
	return []finance.AllocationWithExpenses{}, nil
}

func (f *fakeFinanceRepo) RecordExpense(ctx context.Context, allocationID int64, amountSpent float64) (int64, error) {
	if f.recordExpenseFn != nil {
		return f.recordExpenseFn(ctx, allocationID, amountSpent)
	}
	return 1, nil
}

func (f *fakeFinanceRepo) Dashboard(ctx context.Context) (finance.Dashboard, error) {
	if f.dashboardFn != nil {
		return f.dashboardFn(ctx)
	}
	return finance.Dashboard{}, nil
}

type fakeDepartmentsRepo struct {
	adjustFn func(ctx context.Context, departmentID int64, action department.BudgetAction, amount float64) error
}

func (f *fakeDepartmentsRepo) AdjustBudget(ctx context.Context, departmentID int64, action department.BudgetAction, amount float64) error {
	if f.adjustFn != nil {
		return f.adjustFn(ctx, departmentID, action, amount)
	}
	return nil
}

func newFinanceHandler(repo *fakeFinanceRepo, departments *fakeDepartmentsRepo) *handlers.FinanceHandler {
	return handlers.NewFinanceHandler(repo, departments, testLogger())
}

func TestAllocateBudget(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           `{"departmentID":2,"vendorID":5,"amount":15000}`,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "negative amount",
			body:           `{"departmentID":2,"vendorID":5,"amount":-100}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "missing vendor",
			body:           `{"departmentID":2,"amount":15000}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newFinanceHandler(&fakeFinanceRepo{}, &fakeDepartmentsRepo{})
			r := setupRouter(http.MethodPost, "/budget-allocation", h.AllocateBudget)

			req := httptest.NewRequest(http.MethodPost, "/budget-allocation", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}

func TestRecordExpense(t *testing.T) {
	t.Run("returns the new expense id", func(t *testing.T) {
		repo := &fakeFinanceRepo{
			recordExpenseFn: func(ctx context.Context, allocationID int64, amountSpent float64) (int64, error) {
				return 31, nil
			},
		}

		h := newFinanceHandler(repo, &fakeDepartmentsRepo{})
		r := setupRouter(http.MethodPost, "/budget-allocations-with-expenses", h.RecordExpense)

		body := `{"AllocationID":9,"AmountSpent":120.40}`
		req := httptest.NewRequest(http.MethodPost, "/budget-allocations-with-expenses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Message   string `json:"message"`
			ExpenseID int64  `json:"expenseId"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}

		if resp.ExpenseID != 31 {
			t.Fatalf("expected expenseId 31, got %d", resp.ExpenseID)
		}
	})

	t.Run("unknown allocation", func(t *testing.T) {
		repo := &fakeFinanceRepo{
			recordExpenseFn: func(ctx context.Context, allocationID int64, amountSpent float64) (int64, error) {
				return 0, finance.ErrNotFound
			},
		}

		h := newFinanceHandler(repo, &fakeDepartmentsRepo{})
		r := setupRouter(http.MethodPost, "/budget-allocations-with-expenses", h.RecordExpense)

		body := `{"AllocationID":999,"AmountSpent":120.40}`
		req := httptest.NewRequest(http.MethodPost, "/budget-allocations-with-expenses", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestFinanceDashboard(t *testing.T) {
	repo := &fakeFinanceRepo{
		dashboardFn: func(ctx context.Context) (finance.Dashboard, error) {
			return finance.NewDashboard(1000, 1200), nil
		},
	}

	h := newFinanceHandler(repo, &fakeDepartmentsRepo{})
	r := setupRouter(http.MethodGet, "/dashboard-data-finance", h.FinanceDashboard)

	req := httptest.NewRequest(http.MethodGet, "/dashboard-data-finance", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp finance.Dashboard

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if resp.OutstandingInvoices != 200 {
		t.Fatalf("expected outstanding 200, got %v", resp.OutstandingInvoices)
	}
}

func TestAdjustBudget(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetUp      func(*fakeDepartmentsRepo)
		wantStatusCode int
	}{
		{
			name:           "increase",
			body:           `{"departmentID":2,"action":"increase","amount":500}`,
			repoSetUp:      func(f *fakeDepartmentsRepo) {},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "decrease",
			body:           `{"departmentID":2,"action":"decrease","amount":500}`,
			repoSetUp:      func(f *fakeDepartmentsRepo) {},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid action",
			body:           `{"departmentID":2,"action":"double","amount":500}`,
			repoSetUp:      func(f *fakeDepartmentsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "negative amount",
			body:           `{"departmentID":2,"action":"increase","amount":-500}`,
			repoSetUp:      func(f *fakeDepartmentsRepo) {},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "unknown department",
			body: `{"departmentID":404,"action":"increase","amount":500}`,
			repoSetUp: func(f *fakeDepartmentsRepo) {
				f.adjustFn = func(ctx context.Context, departmentID int64, action department.BudgetAction, amount float64) error {
					return department.ErrNotFound
				}
			},
			wantStatusCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			departments := &fakeDepartmentsRepo{}
			tt.repoSetUp(departments)

			h := newFinanceHandler(&fakeFinanceRepo{}, departments)
			r := setupRouter(http.MethodPost, "/adjust-budget", h.AdjustBudget)

			req := httptest.NewRequest(http.MethodPost, "/adjust-budget", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatusCode, w.Code, w.Body.String())
			}
		})
	}
}
