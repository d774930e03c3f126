package cart

import "errors"

var (
	// ErrCartNotFound возвращается, когда корзина не найдена или истекла
	ErrCartNotFound = errors.New("cart.cache: cart not found")

	// ErrEncode возвращается при ошибке сериализации корзины
	ErrEncode = errors.New("cart.cache: failed to encode cart")

	// ErrDecode возвращается при ошибке десериализации корзины
	ErrDecode = errors.New("cart.cache: failed to decode cart")

	// ErrConflict возвращается, когда корзину не удалось обновить из-за параллельных изменений
	ErrConflict = errors.New("cart.cache: cart is being modified concurrently")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("cart.cache: redis error")
)
