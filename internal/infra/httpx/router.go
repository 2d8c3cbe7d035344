package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/ecommerce-api/internal/infra/httpx/middlewares"
)

// NewRouter wires every route. Public catalog reads stay open; everything
// that mutates state requires a token, and administrative routes the admin
// role on top.
func NewRouter(h *Handler, verifier middlewares.TokenVerifier, uploadDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "http.server")
	})
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	auth := middlewares.Authenticate(verifier)
	admin := middlewares.RequireAdmin

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Uploaded product images are served straight off disk.
	r.Handle("/images/*", http.StripPrefix("/images/", http.FileServer(http.Dir(uploadDir))))

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(auth, admin).Get("/", h.ListUsers)
			r.With(auth).Put("/profile", h.UpdateProfile)
		})

		r.Route("/roles", func(r chi.Router) {
			r.Use(auth, admin)
			r.Get("/", h.ListRoles)
			r.Post("/", h.CreateRole)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(auth)
			r.With(admin).Get("/", h.ListCustomers)
			r.Post("/", h.CreateCustomer)
			r.Get("/{id}", h.GetCustomer)
			r.Put("/{id}", h.UpdateCustomer)
			r.With(admin).Delete("/{id}", h.DeleteCustomer)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Get("/{id}", h.GetCategory)
			r.With(auth, admin).Post("/", h.CreateCategory)
			r.With(auth, admin).Put("/{id}", h.UpdateCategory)
			r.With(auth, admin).Delete("/{id}", h.DeleteCategory)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{slug}", h.GetProduct)
			r.With(auth, admin).Post("/", h.CreateProduct)
			r.With(auth, admin).Put("/{slug}", h.UpdateProduct)
			r.With(auth, admin).Delete("/{slug}", h.DeleteProduct)
		})

		r.Route("/product-images", func(r chi.Router) {
			r.Get("/product/{productID}", h.ListProductImages)
			r.With(auth, admin).Post("/product/{productID}", h.UploadProductImage)
			r.With(auth, admin).Put("/{id}/thumbnail", h.SetProductThumbnail)
			r.With(auth, admin).Delete("/{id}", h.DeleteProductImage)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth)
			r.With(admin).Get("/", h.ListOrders)
			r.Get("/myorders", h.MyOrders)
			r.Post("/", h.CreateOrder)
			r.Get("/{id}", h.GetOrder)
			r.With(admin).Patch("/{id}", h.UpdateOrderStatus)
			r.With(admin).Delete("/{id}", h.DeleteOrder)
		})

		// Payments are create-and-read only: financial records are never
		// updated or deleted through the API.
		r.Route("/payments", func(r chi.Router) {
			r.Use(auth)
			r.Post("/", h.CreatePayment)
			r.With(admin).Get("/", h.ListPayments)
			r.Get("/{id}", h.GetPayment)
		})
	})

	return r
}
