package bill

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type StubBillRepo struct {
	data map[uuid.UUID]Bill
}

func NewStubBillRepo() *StubBillRepo {
	return &StubBillRepo{data: map[uuid.UUID]Bill{}}
}

func (s *StubBillRepo) Store(ctx context.Context, userId int, bill Bill) error {
	s.data[bill.Id] = bill
	return nil
}

func (s *StubBillRepo) GetAll(ctx context.Context, userId int, includeInactive bool) ([]Bill, error) {
	bills := make([]Bill, 0, len(s.data))
	for _, bill := range s.data {
		if bill.Active || includeInactive {
			bills = append(bills, bill)
		}
	}
	return bills, nil
}

func (s *StubBillRepo) GetById(ctx context.Context, userId int, billId uuid.UUID) (Bill, error) {
	bill, ok := s.data[billId]
	if !ok {
		return Bill{}, ErrBillNotFound
	}
	return bill, nil
}

func (s *StubBillRepo) Update(ctx context.Context, userId int, bill Bill) (bool, error) {
	if _, ok := s.data[bill.Id]; !ok {
		return false, nil
	}
	s.data[bill.Id] = bill
	return true, nil
}

func (s *StubBillRepo) UpdateLastPayment(ctx context.Context, userId int, billId uuid.UUID, paidOn time.Time) (bool, error) {
	bill, ok := s.data[billId]
	if !ok {
		return false, nil
	}
	bill.LastPaymentDate = paidOn
	s.data[billId] = bill
	return true, nil
}

func (s *StubBillRepo) Delete(ctx context.Context, userId int, billId uuid.UUID) (bool, error) {
	if _, ok := s.data[billId]; !ok {
		return false, nil
	}
	delete(s.data, billId)
	return true, nil
}

func (s *StubBillRepo) Cleanup() {
	s.data = map[uuid.UUID]Bill{}
}
