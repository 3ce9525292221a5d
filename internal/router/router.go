package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"bazaar/internal/auth"
	"bazaar/internal/config"
	"bazaar/internal/errors"
	"bazaar/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	blogHandler *handler.BlogHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/seed/catalog", seedHandler.SeedCatalog)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		// A missing token is a 401 like an invalid one, not the
		// middleware's default 400.
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
		},
	}))

	// Seller-facing catalog
	sellerProducts := secured.Group("/user-products", requireCapability(auth.CapManageProducts))
	sellerProducts.GET("", productHandler.ListUserProducts)
	sellerProducts.POST("", productHandler.CreateProduct)
	sellerProducts.PUT("/:id", productHandler.UpdateProduct)
	sellerProducts.DELETE("/:id", productHandler.DeleteProduct)

	// Storefront
	secured.GET("/product-detail/:id", productHandler.GetProductDetail, requireCapability(auth.CapReadDetail))
	secured.GET("/guest-products", productHandler.ListGuestProducts, requireCapability(auth.CapBrowseCatalog))

	// Cart: one route, four verbs
	cart := secured.Group("/cart", requireCapability(auth.CapUseCart))
	cart.GET("", cartHandler.GetCart)
	cart.POST("", cartHandler.AddItem)
	cart.PUT("", cartHandler.UpdateItem)
	cart.DELETE("", cartHandler.RemoveItem)

	// Author-facing blogs
	authorBlogs := secured.Group("/user-blogs", requireCapability(auth.CapManageBlogs))
	authorBlogs.GET("", blogHandler.ListUserBlogs)
	authorBlogs.POST("", blogHandler.CreateBlog)
	authorBlogs.PUT("/:id", blogHandler.UpdateBlog)
	authorBlogs.DELETE("/:id", blogHandler.DeleteBlog)

	secured.GET("/blogs-detail/:id", blogHandler.GetBlogDetail, requireCapability(auth.CapReadDetail))
	secured.GET("/guest-blogs", blogHandler.ListGuestBlogs, requireCapability(auth.CapBrowseBlogs))
	secured.GET("/blogs-count", blogHandler.CountBlogs, requireCapability(auth.CapReadDetail))

	comments := secured.Group("/blogs/:id/comments", requireCapability(auth.CapComment))
	comments.GET("", blogHandler.ListComments)
	comments.POST("", blogHandler.CreateComment)
}

// requireCapability gates a route on the principal's role granting the
// capability. No principal is 401; a principal without the grant is 403.
func requireCapability(cap auth.Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
			}
			if !auth.ParseRole(claims.Role).Can(cap) {
				httpErr := errors.MapErrorToHTTP(errors.ErrForbidden)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return next(c)
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
