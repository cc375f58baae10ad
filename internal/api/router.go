package api

import (
	"context"
	"net/http"
	"time"

	"parqueo_api/internal/api/handler"
	"parqueo_api/internal/api/middleware"
	"parqueo_api/internal/api/respond"
	"parqueo_api/internal/domain"
	"parqueo_api/internal/service"

	"github.com/gin-gonic/gin"
)

// Services are the application services the routes are served by.
type Services struct {
	Auth         *service.AuthService
	Tickets      *service.TicketService
	Payments     *service.PaymentService
	Clients      *service.ClientService
	Vehicles     *service.VehicleService
	Facility     *service.FacilityService
	Tariffs      *service.TariffService
	PaymentTypes *service.PaymentTypeService
	Fines        *service.FineService
	Reservations *service.ReservationService
	Roles        *service.RoleService
	Employees    *service.EmployeeService
	AccessLogs   *service.AccessLogService
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func SetupRouter(s Services, authMw *middleware.AuthMiddleware, db Pinger, exposeDetails bool) *gin.Engine {
	respond.RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestLogger(exposeDetails))
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())

	r.GET("/", apiIndex)
	r.GET("/health", health(db))
	r.NoRoute(notFound)

	api := r.Group("/api")
	can := authMw.Require

	authH := handler.NewAuthHandler(s.Auth)
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", authMw.OptionalAuthenticate(), authH.Register)
		authRoutes.POST("/login", authH.Login)
		authRoutes.GET("/perfil", authMw.Authenticate(), authH.Profile)
		authRoutes.POST("/logout", authMw.Authenticate(), authH.Logout)
	}

	private := api.Group("")
	private.Use(authMw.Authenticate())

	ticketH := handler.NewTicketHandler(s.Tickets)
	tickets := private.Group("/tickets")
	{
		tickets.GET("", can(domain.CapTicketsRead), ticketH.List)
		tickets.GET("/activos", can(domain.CapTicketsRead), ticketH.ListActive)
		tickets.GET("/vehiculo/:placa", can(domain.CapTicketsRead), ticketH.ListByPlate)
		tickets.GET("/:id", can(domain.CapTicketsRead), ticketH.GetByID)
		tickets.POST("/entrada", can(domain.CapTicketsCreate), ticketH.RegisterEntry)
		tickets.PUT("/:id/salida", can(domain.CapTicketsUpdate), ticketH.RegisterExit)
	}

	paymentH := handler.NewPaymentHandler(s.Payments)
	payments := private.Group("/pagos")
	{
		payments.GET("", can(domain.CapPaymentsRead), paymentH.List)
		payments.GET("/reporte", can(domain.CapPaymentsReport), paymentH.Report)
		payments.GET("/ticket/:ticket_id", can(domain.CapPaymentsRead), paymentH.GetByTicket)
		payments.GET("/:id", can(domain.CapPaymentsRead), paymentH.GetByID)
		payments.POST("", can(domain.CapPaymentsCreate), paymentH.RegisterPayment)
	}

	clientH := handler.NewClientHandler(s.Clients)
	clients := private.Group("/clientes")
	{
		clients.GET("", can(domain.CapClientsRead), clientH.List)
		clients.GET("/:id", can(domain.CapClientsRead), clientH.GetByID)
		clients.POST("", can(domain.CapClientsWrite), clientH.Create)
		clients.PUT("/:id", can(domain.CapClientsWrite), clientH.Update)
		clients.DELETE("/:id", can(domain.CapClientsDelete), clientH.Delete)
	}

	vehicleH := handler.NewVehicleHandler(s.Vehicles)
	vehicles := private.Group("/vehiculos")
	{
		vehicles.GET("", can(domain.CapVehiclesRead), vehicleH.List)
		vehicles.GET("/placa/:placa", can(domain.CapVehiclesRead), vehicleH.GetByPlate)
		vehicles.GET("/:id", can(domain.CapVehiclesRead), vehicleH.GetByID)
		vehicles.POST("", can(domain.CapVehiclesWrite), vehicleH.Create)
		vehicles.PUT("/:id", can(domain.CapVehiclesWrite), vehicleH.Update)
		vehicles.DELETE("/:id", can(domain.CapVehiclesDelete), vehicleH.Delete)
	}

	facilityH := handler.NewFacilityHandler(s.Facility)
	zones := private.Group("/zonas")
	{
		zones.GET("", can(domain.CapSpacesRead), facilityH.ListZones)
		zones.GET("/:id", can(domain.CapSpacesRead), facilityH.GetZone)
		zones.POST("", can(domain.CapSpacesManage), facilityH.CreateZone)
		zones.PUT("/:id", can(domain.CapSpacesManage), facilityH.UpdateZone)
		zones.DELETE("/:id", can(domain.CapSpacesManage), facilityH.DeleteZone)
	}
	spaces := private.Group("/espacios")
	{
		spaces.GET("", can(domain.CapSpacesRead), facilityH.ListSpaces)
		spaces.GET("/disponibles", can(domain.CapSpacesRead), facilityH.ListAvailableSpaces)
		spaces.GET("/:id", can(domain.CapSpacesRead), facilityH.GetSpace)
		spaces.POST("", can(domain.CapSpacesManage), facilityH.CreateSpace)
		spaces.PUT("/:id", can(domain.CapSpacesManage), facilityH.UpdateSpace)
		spaces.PATCH("/:id/disponibilidad", can(domain.CapSpacesManage), facilityH.SetAvailability)
		spaces.DELETE("/:id", can(domain.CapSpacesManage), facilityH.DeleteSpace)
	}

	tariffH := handler.NewTariffHandler(s.Tariffs, s.PaymentTypes)
	tariffs := private.Group("/tarifas")
	{
		tariffs.GET("", can(domain.CapTariffsRead), tariffH.List)
		tariffs.GET("/:id", can(domain.CapTariffsRead), tariffH.GetByID)
		tariffs.POST("", can(domain.CapTariffsManage), tariffH.Create)
		tariffs.PUT("/:id", can(domain.CapTariffsManage), tariffH.Update)
		tariffs.DELETE("/:id", can(domain.CapTariffsManage), tariffH.Delete)
	}
	paymentTypes := private.Group("/tipospago")
	{
		paymentTypes.GET("", can(domain.CapPaymentTypesRead), tariffH.ListPaymentTypes)
		paymentTypes.GET("/:id", can(domain.CapPaymentTypesRead), tariffH.GetPaymentType)
		paymentTypes.POST("", can(domain.CapPaymentTypesManage), tariffH.CreatePaymentType)
		paymentTypes.PUT("/:id", can(domain.CapPaymentTypesManage), tariffH.UpdatePaymentType)
		paymentTypes.DELETE("/:id", can(domain.CapPaymentTypesManage), tariffH.DeletePaymentType)
	}

	fineH := handler.NewFineHandler(s.Fines)
	fines := private.Group("/multas")
	{
		fines.GET("", can(domain.CapFinesRead), fineH.List)
		fines.GET("/ticket/:ticket_id", can(domain.CapFinesRead), fineH.ListByTicket)
		fines.GET("/:id", can(domain.CapFinesRead), fineH.GetByID)
		fines.POST("", can(domain.CapFinesCreate), fineH.Create)
		fines.PUT("/:id", can(domain.CapFinesManage), fineH.Update)
		fines.DELETE("/:id", can(domain.CapFinesManage), fineH.Delete)
	}

	reservationH := handler.NewReservationHandler(s.Reservations)
	reservations := private.Group("/reservas")
	{
		reservations.GET("", can(domain.CapReservationsRead), reservationH.List)
		reservations.GET("/activas", can(domain.CapReservationsRead), reservationH.ListActive)
		reservations.GET("/cliente/:cliente_id", can(domain.CapReservationsRead), reservationH.ListByClient)
		reservations.GET("/:id", can(domain.CapReservationsRead), reservationH.GetByID)
		reservations.POST("", can(domain.CapReservationsCreate), reservationH.Create)
		reservations.PUT("/:id", can(domain.CapReservationsManage), reservationH.Update)
		reservations.PATCH("/:id/cancelar", can(domain.CapReservationsManage), reservationH.Cancel)
		reservations.PATCH("/:id/finalizar", can(domain.CapReservationsManage), reservationH.Finish)
	}

	roleH := handler.NewRoleHandler(s.Roles)
	roles := private.Group("/roles", can(domain.CapRolesManage))
	{
		roles.GET("", roleH.List)
		roles.GET("/:id", roleH.GetByID)
		roles.GET("/:id/permisos", roleH.Permissions)
		roles.POST("", roleH.Create)
		roles.PUT("/:id", roleH.Update)
		roles.DELETE("/:id", roleH.Delete)
	}

	employeeH := handler.NewEmployeeHandler(s.Employees)
	shifts := private.Group("/turnos", can(domain.CapShiftsManage))
	{
		shifts.GET("", employeeH.ListShifts)
		shifts.GET("/:id", employeeH.GetShift)
		shifts.POST("", employeeH.CreateShift)
		shifts.PUT("/:id", employeeH.UpdateShift)
		shifts.DELETE("/:id", employeeH.DeleteShift)
	}
	employees := private.Group("/empleados", can(domain.CapEmployeesManage))
	{
		employees.GET("", employeeH.List)
		employees.GET("/:id", employeeH.GetByID)
		employees.POST("", employeeH.Create)
		employees.PUT("/:id", employeeH.Update)
		employees.PATCH("/:id/estado", employeeH.SetActive)
		employees.DELETE("/:id", employeeH.Delete)
	}

	historyH := handler.NewAccessLogHandler(s.AccessLogs)
	history := private.Group("/historial", can(domain.CapAccessLogManage))
	{
		history.GET("", historyH.List)
		history.GET("/estadisticas", historyH.Stats)
		history.GET("/usuario/:usuario_id", historyH.ListByUser)
		history.GET("/:id", historyH.GetByID)
		history.POST("", historyH.Record)
		history.DELETE("/limpiar", historyH.Purge)
	}

	return r
}

// GET /
func apiIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"nombre":  "API Parqueo",
		"version": "1.0.0",
		"endpoints": gin.H{
			"auth":      "/api/auth",
			"clientes":  "/api/clientes",
			"vehiculos": "/api/vehiculos",
			"tickets":   "/api/tickets",
			"pagos":     "/api/pagos",
			"zonas":     "/api/zonas",
			"espacios":  "/api/espacios",
			"tarifas":   "/api/tarifas",
			"tipospago": "/api/tipospago",
			"multas":    "/api/multas",
			"reservas":  "/api/reservas",
			"roles":     "/api/roles",
			"turnos":    "/api/turnos",
			"empleados": "/api/empleados",
			"historial": "/api/historial",
		},
	})
}

// GET /health
func health(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "ok"})
	}
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   respond.ClassNotFound,
		"mensaje": "Ruta no encontrada",
		"ruta":    c.Request.URL.Path,
		"metodo":  c.Request.Method,
	})
}
