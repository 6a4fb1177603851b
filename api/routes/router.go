package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aurelia-jewels/storefront-gateway/api/controllers"
	"github.com/aurelia-jewels/storefront-gateway/api/middleware"
	"github.com/aurelia-jewels/storefront-gateway/internal/auth"
	"github.com/aurelia-jewels/storefront-gateway/internal/catalog"
	"github.com/aurelia-jewels/storefront-gateway/internal/orders"
	sync "github.com/aurelia-jewels/storefront-gateway/internal/sync"
	"github.com/aurelia-jewels/storefront-gateway/internal/users"
	"github.com/aurelia-jewels/storefront-gateway/pkg/config"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	authService auth.Service,
	synchronizer *sync.Synchronizer,
	catalogService catalog.Service,
	ordersService orders.Service,
	usersService users.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	otpPolicy := middleware.NewAuthRateLimitPolicy(
		"otp",
		cfg.AuthRateLimit.OTPWindow,
		cfg.AuthRateLimit.OTPIPLimit,
		cfg.AuthRateLimit.OTPEmailLimit,
	)
	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIP,
		cfg.AuthRateLimit.LoginEmail,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(otpPolicy, redisClient, logg)).Post("/request-otp", controllers.AuthRequestOTP(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/register", controllers.AuthRegister(authService, logg))
		r.With(middleware.Auth(authService, logg)).Post("/logout", controllers.AuthLogout(authService, synchronizer, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(authService, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(synchronizer, logg))
			r.Post("/", controllers.CartAdd(synchronizer, logg))
			r.Delete("/{productId}", controllers.CartRemove(synchronizer, logg))
			r.Patch("/{productId}/increase", controllers.CartIncrease(synchronizer, logg))
			r.Patch("/{productId}/decrease", controllers.CartDecrease(synchronizer, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(synchronizer, logg))
			r.Post("/", controllers.WishlistAdd(synchronizer, logg))
			r.Delete("/{productId}", controllers.WishlistRemove(synchronizer, logg))
			r.Post("/{productId}/move-to-cart", controllers.WishlistMoveToCart(synchronizer, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(catalogService, logg))
			r.Get("/{productId}", controllers.ProductsGet(catalogService, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.ProductsCreate(catalogService, logg))
				r.Post("/upload-temp", controllers.ProductsUploadTemp(catalogService, logg))
				r.Patch("/{productId}", controllers.ProductsUpdate(catalogService, logg))
				r.Delete("/{productId}", controllers.ProductsDelete(catalogService, logg))
				r.Put("/{productId}/deactivate", controllers.ProductsDeactivate(catalogService, logg))
				r.Put("/{productId}/reactivate", controllers.ProductsReactivate(catalogService, logg))
			})

			r.Post("/pricing/quote", controllers.PricingQuote(logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.OrdersList(ordersService, logg))
				r.Post("/manual", controllers.OrdersCreateManual(ordersService, logg))
				r.Patch("/{orderId}/status", controllers.OrdersUpdateStatus(ordersService, logg))
			})

			r.Route("/users", func(r chi.Router) {
				r.Get("/", controllers.UsersList(usersService, logg))
				r.Post("/", controllers.UsersCreate(usersService, logg))
				r.Delete("/{userId}", controllers.UsersDelete(usersService, logg))
			})
		})
	})

	return r
}
