package usecase

import (
	"context"
	"testing"
	"time"

	"robostore/internal/domain/model"
	repo "robostore/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func validCouponInput() AdminSaveCouponInput {
	return AdminSaveCouponInput{
		Code:       "save20",
		Type:       "percentage",
		Value:      20,
		UsageLimit: 100,
		IsActive:   true,
		ValidFrom:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestAdminCouponCreate_NormalizesCode(t *testing.T) {
	couponRepo := new(CpnCouponRepoMock)

	var captured model.Coupon
	couponRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(model.Coupon)
	}).Return(model.Coupon{ID: 1, Code: "SAVE20"}, nil)

	uc := NewAdminCouponUsecase(couponRepo)

	_, err := uc.Create(context.Background(), 1, validCouponInput())
	assert.NoError(t, err)
	assert.Equal(t, "SAVE20", captured.Code)
}

func TestAdminCouponCreate_Validation(t *testing.T) {
	uc := NewAdminCouponUsecase(new(CpnCouponRepoMock))

	cases := []struct {
		name   string
		mutate func(*AdminSaveCouponInput)
	}{
		{"empty code", func(in *AdminSaveCouponInput) { in.Code = "  " }},
		{"bad type", func(in *AdminSaveCouponInput) { in.Type = "bogo" }},
		{"zero value", func(in *AdminSaveCouponInput) { in.Value = 0 }},
		{"percentage over 100", func(in *AdminSaveCouponInput) { in.Value = 150 }},
		{"negative minimum", func(in *AdminSaveCouponInput) { in.MinimumAmount = -1 }},
		{"zero usage limit", func(in *AdminSaveCouponInput) { in.UsageLimit = 0 }},
		{"window reversed", func(in *AdminSaveCouponInput) {
			in.ValidFrom, in.ValidUntil = in.ValidUntil, in.ValidFrom
		}},
	}

	for _, tc := range cases {
		in := validCouponInput()
		tc.mutate(&in)

		_, err := uc.Create(context.Background(), 1, in)
		he, ok := AsHTTPError(err)
		assert.True(t, ok, tc.name)
		assert.Equal(t, 400, he.Status, tc.name)
	}
}

func TestAdminCouponCreate_FixedOver100IsFine(t *testing.T) {
	couponRepo := new(CpnCouponRepoMock)
	couponRepo.On("Create", mock.Anything, mock.Anything).Return(model.Coupon{ID: 1}, nil)

	uc := NewAdminCouponUsecase(couponRepo)

	in := validCouponInput()
	in.Type = "fixed"
	in.Value = 2_500 // $25

	_, err := uc.Create(context.Background(), 1, in)
	assert.NoError(t, err)
}

func TestAdminCouponCreate_DuplicateCode(t *testing.T) {
	couponRepo := new(CpnCouponRepoMock)
	couponRepo.On("Create", mock.Anything, mock.Anything).Return(model.Coupon{}, repo.ErrConflict)

	uc := NewAdminCouponUsecase(couponRepo)

	_, err := uc.Create(context.Background(), 1, validCouponInput())
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

// 編集でコードを変えたら、正規化された新コードが保存される
func TestAdminCouponUpdate_ChangesCode(t *testing.T) {
	couponRepo := new(CpnCouponRepoMock)

	var captured model.Coupon
	couponRepo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(model.Coupon)
	}).Return(nil)

	uc := NewAdminCouponUsecase(couponRepo)

	in := validCouponInput()
	in.Code = " robot25 "

	err := uc.Update(context.Background(), 1, 7, in)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), captured.ID)
	assert.Equal(t, "ROBOT25", captured.Code)
}

func TestAdminCouponUpdate_DuplicateCode(t *testing.T) {
	couponRepo := new(CpnCouponRepoMock)
	couponRepo.On("Update", mock.Anything, mock.Anything).Return(repo.ErrConflict)

	uc := NewAdminCouponUsecase(couponRepo)

	err := uc.Update(context.Background(), 1, 7, validCouponInput())
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}
