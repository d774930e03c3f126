package coupons

import "errors"

var (
	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("coupons: coupon not found")

	// ErrCodeTaken возвращается, когда купон с таким кодом уже есть
	ErrCodeTaken = errors.New("coupons: coupon code already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("coupons: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("coupons: internal error")
)
