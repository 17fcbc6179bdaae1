package report

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	loanDomain "loanledger-backend/internal/domain/loan"
	"loanledger-backend/internal/domain/uow"
	"loanledger-backend/pkg/money"
)

// Summary is the single consistent dashboard read that replaces the portal's
// four split fetches. Dashboards are advisory: a short cache window is fine.
type Summary struct {
	PendingLoans   int64        `json:"pending_loans"`
	ApprovedLoans  int64        `json:"approved_loans"`
	RejectedLoans  int64        `json:"rejected_loans"`
	FullyPaidLoans int64        `json:"fully_paid_loans"`
	TotalLoans     int64        `json:"total_loans"`
	PrincipalTotal money.Amount `json:"principal_total"`
	Outstanding    money.Amount `json:"outstanding_total"`
	RepaidTotal    money.Amount `json:"repaid_total"`
	UserCount      int64        `json:"user_count,omitempty"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

type Usecase struct {
	uow      uow.UnitOfWork
	rdb      *redis.Client
	cacheTTL time.Duration
}

// NewUsecase: rdb may be nil, which disables caching (tests use that).
func NewUsecase(tx uow.UnitOfWork, rdb *redis.Client, cacheTTL time.Duration) *Usecase {
	return &Usecase{uow: tx, rdb: rdb, cacheTTL: cacheTTL}
}

// AdminSummary aggregates the whole book inside one transaction snapshot.
func (u *Usecase) AdminSummary(ctx context.Context) (*Summary, error) {
	return u.summary(ctx, "")
}

// BorrowerSummary is the per-borrower dashboard.
func (u *Usecase) BorrowerSummary(ctx context.Context, borrowerID string) (*Summary, error) {
	if borrowerID == "" {
		return nil, errors.New("borrower id required")
	}
	return u.summary(ctx, borrowerID)
}

func (u *Usecase) summary(ctx context.Context, borrowerID string) (*Summary, error) {
	key := cacheKey(borrowerID)
	if s := u.fromCache(ctx, key); s != nil {
		return s, nil
	}

	var out *Summary
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		totals, err := r.Loans.Totals(ctx, borrowerID)
		if err != nil {
			return err
		}

		s := &Summary{
			PendingLoans:   totals.CountByStatus[loanDomain.StatusPending],
			ApprovedLoans:  totals.CountByStatus[loanDomain.StatusApproved],
			RejectedLoans:  totals.CountByStatus[loanDomain.StatusRejected],
			FullyPaidLoans: totals.CountByStatus[loanDomain.StatusFullyPaid],
			PrincipalTotal: money.Amount(totals.PrincipalTotal),
			Outstanding:    money.Amount(totals.OutstandingTotal),
			GeneratedAt:    time.Now().UTC(),
		}
		s.TotalLoans = s.PendingLoans + s.ApprovedLoans + s.RejectedLoans + s.FullyPaidLoans

		if borrowerID == "" {
			repaid, err := r.Repayments.SumApproved(ctx)
			if err != nil {
				return err
			}
			s.RepaidTotal = money.Amount(repaid)

			users, err := r.Users.Count(ctx)
			if err != nil {
				return err
			}
			s.UserCount = users
		} else {
			// principal - outstanding is what this borrower has retired
			s.RepaidTotal = s.PrincipalTotal.Sub(s.Outstanding)
		}

		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.toCache(ctx, key, out)
	return out, nil
}

func cacheKey(borrowerID string) string {
	if borrowerID == "" {
		return "dash:admin"
	}
	return "dash:user:" + borrowerID
}

func (u *Usecase) fromCache(ctx context.Context, key string) *Summary {
	if u.rdb == nil || u.cacheTTL <= 0 {
		return nil
	}
	v, err := u.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var s Summary
	if err := json.Unmarshal(v, &s); err != nil {
		return nil
	}
	return &s
}

func (u *Usecase) toCache(ctx context.Context, key string, s *Summary) {
	if u.rdb == nil || u.cacheTTL <= 0 {
		return
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return
	}
	if err := u.rdb.Set(ctx, key, payload, u.cacheTTL).Err(); err != nil {
		log.Printf("dashboard cache write failed: %v", err)
	}
}
