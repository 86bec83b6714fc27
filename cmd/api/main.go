package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/doctorsportal/portal-api/internal/handlers"
	"github.com/doctorsportal/portal-api/internal/middleware"
	"github.com/doctorsportal/portal-api/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}
	if os.Getenv("JWT_SECRET") == "" {
		log.Println("JWT_SECRET is NOT SET.")
	}

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(os.Getenv("MONGO_URI")))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "doctors_portal"
	}
	db := client.Database(dbName)
	log.Println("Successfully connected to MongoDB!")

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	// --- Services and Handlers ---
	paymentSvc := services.NewPaymentService(os.Getenv("STRIPE_SECRET_KEY"))
	h := handlers.NewHandler(db, paymentSvc)

	// --- Gin Router ---
	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Hello from Doctors portal!")
	})

	auth := middleware.AuthMiddleware()
	admin := middleware.AdminMiddleware(h.Roles)

	// --- Public routes ---
	r.GET("/service", h.GetServices)
	r.GET("/available", h.GetAvailable)
	r.POST("/booking", h.CreateBooking)

	// Catch-all covering PUT /user/:email and PUT /user/admin/:email; see
	// Handler.PutUser for why gin cannot register them separately.
	r.PUT("/user/*email", h.PutUser(auth, admin))

	// --- Token-protected routes ---
	r.GET("/booking", auth, h.GetBookings)
	r.GET("/booking/:id", auth, h.GetBooking)
	r.PATCH("/booking/:id", auth, h.PayBooking)
	r.GET("/user", auth, h.GetUsers)
	r.DELETE("/user/:email", auth, admin, h.DeleteUser)
	r.GET("/admin/:email", auth, h.CheckAdmin)
	r.GET("/doctor", auth, h.GetDoctors)
	r.POST("/doctor", auth, admin, h.CreateDoctor)
	r.DELETE("/doctor/:email", auth, admin, h.DeleteDoctor)
	r.GET("/review", auth, h.GetReviews)
	r.POST("/review", auth, h.CreateReview)
	r.POST("/create-payment-intent", auth, h.CreatePaymentIntent)

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	r.Run(":" + port)
}

// ensureIndexes creates the unique booking index so two racing inserts of the
// same (treatment, date, patient) triple cannot both land.
func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("bookings").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "treatment", Value: 1},
			{Key: "date", Value: 1},
			{Key: "patient", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}
