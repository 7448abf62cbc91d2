package rest

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinic/config"
	"clinic/internal/service"
)

type Handler struct {
	services *service.Services
	logger   *zap.Logger
	config   *config.Config
}

func NewHandler(services *service.Services, logger *zap.Logger, config *config.Config) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
		config:   config,
	}
}

func (h *Handler) InitRoutes(router *gin.Engine) {
	router.Use(h.loggerMiddleware())
	router.Use(h.corsMiddleware())

	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", h.register)
			auth.POST("/login", h.login)
			auth.POST("/refresh", h.refreshTokens)
			auth.POST("/logout", h.logout)
		}

		users := api.Group("/users")
		users.Use(h.authMiddleware())
		{
			users.GET("/me", h.getCurrentUser)
			users.GET("/:id", h.getUserByID)
			users.PUT("/:id", h.updateUser)
			users.PUT("/:id/password", h.updatePassword)

			admin := users.Group("/")
			admin.Use(h.adminMiddleware())
			{
				admin.POST("/", h.createUser)
				admin.GET("/", h.getUsers)
				admin.DELETE("/:id", h.deleteUser)
			}
		}

		doctors := api.Group("/doctors")
		{
			doctors.GET("/", h.getDoctors)
			doctors.GET("/me", h.authMiddleware(), h.doctorMiddleware(), h.getMyDoctorProfile)
			doctors.GET("/me/appointments", h.authMiddleware(), h.doctorMiddleware(), h.getMyAppointments)
			doctors.GET("/me/statistics", h.authMiddleware(), h.doctorMiddleware(), h.getMyStatistics)
			doctors.GET("/:id", h.getDoctorByID)
			doctors.GET("/:id/free-slots", h.getDoctorFreeSlots)
			doctors.GET("/:id/available-days", h.getDoctorAvailableDays)

			admin := doctors.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createDoctor)
				admin.PUT("/:id", h.updateDoctor)
				admin.DELETE("/:id", h.deleteDoctor)
				admin.POST("/:id/photo", h.uploadDoctorPhoto)
				admin.DELETE("/:id/photo", h.deleteDoctorPhoto)
			}
		}

		patients := api.Group("/patients")
		patients.Use(h.authMiddleware())
		{
			patients.GET("/me", h.getMyPatientProfile)
			patients.POST("/", h.createPatient)
			patients.PUT("/:id", h.updatePatient)

			staff := patients.Group("/", h.staffMiddleware())
			{
				staff.GET("/", h.getPatients)
				staff.GET("/:id", h.getPatientByID)
			}
		}

		schedules := api.Group("/schedules")
		{
			schedules.GET("/:id", h.getScheduleByID)

			staff := schedules.Group("/", h.authMiddleware(), h.staffMiddleware())
			{
				staff.GET("/", h.getSchedules)
				staff.POST("/", h.createSchedule)
				staff.POST("/ensure", h.ensureSchedule)
				staff.PUT("/:id", h.updateSchedule)
				staff.DELETE("/:id", h.deleteSchedule)
				staff.PATCH("/:id/availability", h.toggleScheduleAvailability)
			}
		}

		appointments := api.Group("/appointments")
		appointments.Use(h.authMiddleware())
		{
			appointments.POST("/", h.createAppointment)
			appointments.GET("/", h.getAppointments)
			appointments.GET("/:id", h.getAppointmentByID)
			appointments.PUT("/:id", h.updateAppointment)
			appointments.PUT("/:id/status", h.changeAppointmentStatus)
			appointments.DELETE("/:id", h.cancelAppointment)
		}

		booking := api.Group("/booking")
		booking.Use(h.authMiddleware())
		{
			booking.POST("/", h.startBooking)
			booking.GET("/:token", h.getBookingDraft)
			booking.PUT("/:token/specialization", h.setBookingSpecialization)
			booking.PUT("/:token/doctor", h.setBookingDoctor)
			booking.PUT("/:token/service", h.setBookingService)
			booking.PUT("/:token/slot", h.setBookingSlot)
			booking.POST("/:token/confirm", h.confirmBooking)
		}

		specializations := api.Group("/specializations")
		{
			specializations.GET("/", h.getSpecializations)
			specializations.GET("/:id", h.getSpecializationByID)

			admin := specializations.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSpecialization)
				admin.PUT("/:id", h.updateSpecialization)
				admin.DELETE("/:id", h.deleteSpecialization)
			}
		}

		departments := api.Group("/departments")
		{
			departments.GET("/", h.getDepartments)
			departments.GET("/:id", h.getDepartmentByID)

			admin := departments.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createDepartment)
				admin.PUT("/:id", h.updateDepartment)
				admin.DELETE("/:id", h.deleteDepartment)
			}
		}

		services := api.Group("/services")
		{
			services.GET("/", h.getServices)
			services.GET("/:id", h.getServiceByID)

			admin := services.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createService)
				admin.PUT("/:id", h.updateService)
				admin.DELETE("/:id", h.deleteService)
				admin.PUT("/:id/doctors", h.setServiceDoctors)
			}
		}

		news := api.Group("/news")
		{
			news.GET("/", h.optionalAuthMiddleware(), h.getNewsList)
			news.GET("/:id", h.getNewsByID)
			news.GET("/slug/:slug", h.getNewsBySlug)

			admin := news.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createNews)
				admin.PUT("/:id", h.updateNews)
				admin.POST("/:id/image", h.uploadNewsImage)
				admin.DELETE("/:id", h.deleteNews)
			}
		}

		contacts := api.Group("/contacts")
		{
			contacts.GET("/", h.optionalAuthMiddleware(), h.getContacts)

			admin := contacts.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createContact)
				admin.PUT("/:id", h.updateContact)
				admin.DELETE("/:id", h.deleteContact)
			}
		}

		slider := api.Group("/slider")
		{
			slider.GET("/", h.optionalAuthMiddleware(), h.getSlides)

			admin := slider.Group("/", h.authMiddleware(), h.adminMiddleware())
			{
				admin.POST("/", h.createSlide)
				admin.PUT("/:id", h.updateSlide)
				admin.DELETE("/:id", h.deleteSlide)
			}
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/", h.optionalAuthMiddleware(), h.getReviews)

			auth := reviews.Group("/", h.authMiddleware())
			{
				auth.POST("/", h.createReview)

				admin := auth.Group("/", h.adminMiddleware())
				{
					admin.PUT("/:id/publish", h.publishReview)
					admin.DELETE("/:id", h.deleteReview)
				}
			}
		}
	}
}
