package routes

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dinu12141/CMMS-MADAMPE/handlers"
	"github.com/dinu12141/CMMS-MADAMPE/middleware"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH & METRICS (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)
	r.Handle("/metrics", promhttp.Handler()).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION (Public)
	// ====================
	r.HandleFunc("/api/auth/register", handlers.Register).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)

	api := r.PathPrefix("/api").Subrouter()

	// Current user requires a bearer token; the rest of the API is open,
	// matching the original deployment where auth was opt-in.
	me := r.PathPrefix("/api/auth/me").Subrouter()
	me.Use(middleware.AuthMiddleware)
	me.HandleFunc("", handlers.GetCurrentUser).Methods(MethodsGetOnly...)

	// ====================
	// WORK ORDERS
	// ====================
	api.HandleFunc("/work-orders", handlers.ListWorkOrders).Methods(MethodsGetOnly...)
	api.HandleFunc("/work-orders", handlers.CreateWorkOrder).Methods(MethodsPostOnly...)
	api.HandleFunc("/work-orders/stats/summary", handlers.GetWorkOrderStats).Methods(MethodsGetOnly...)
	api.HandleFunc("/work-orders/{id}", handlers.GetWorkOrder).Methods(MethodsGetOnly...)
	api.HandleFunc("/work-orders/{id}", handlers.UpdateWorkOrder).Methods(MethodsPutOnly...)
	api.HandleFunc("/work-orders/{id}", handlers.DeleteWorkOrder).Methods(MethodsDeleteOnly...)

	// ====================
	// ASSETS
	// ====================
	api.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets", handlers.CreateAsset).Methods(MethodsPostOnly...)
	api.HandleFunc("/assets/{id}", handlers.GetAsset).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/{id}", handlers.UpdateAsset).Methods(MethodsPutOnly...)
	api.HandleFunc("/assets/{id}", handlers.DeleteAsset).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/assets/{id}/history", handlers.GetAssetHistory).Methods(MethodsGetOnly...)
	api.HandleFunc("/assets/{id}/image", handlers.UploadAssetImage).Methods(MethodsPostOnly...)

	// ====================
	// INVENTORY
	// ====================
	api.HandleFunc("/inventory", handlers.ListInventory).Methods(MethodsGetOnly...)
	api.HandleFunc("/inventory", handlers.CreateInventoryItem).Methods(MethodsPostOnly...)
	api.HandleFunc("/inventory/{id}", handlers.GetInventoryItem).Methods(MethodsGetOnly...)
	api.HandleFunc("/inventory/{id}", handlers.UpdateInventoryItem).Methods(MethodsPutOnly...)
	api.HandleFunc("/inventory/{id}", handlers.DeleteInventoryItem).Methods(MethodsDeleteOnly...)

	// ====================
	// SERVICE REQUESTS
	// ====================
	api.HandleFunc("/service-requests", handlers.ListServiceRequests).Methods(MethodsGetOnly...)
	api.HandleFunc("/service-requests", handlers.CreateServiceRequest).Methods(MethodsPostOnly...)
	api.HandleFunc("/service-requests/{id}", handlers.GetServiceRequest).Methods(MethodsGetOnly...)
	api.HandleFunc("/service-requests/{id}", handlers.UpdateServiceRequest).Methods(MethodsPutOnly...)
	api.HandleFunc("/service-requests/{id}", handlers.DeleteServiceRequest).Methods(MethodsDeleteOnly...)

	// ====================
	// LOCATIONS
	// ====================
	api.HandleFunc("/locations", handlers.ListLocations).Methods(MethodsGetOnly...)
	api.HandleFunc("/locations", handlers.CreateLocation).Methods(MethodsPostOnly...)
	api.HandleFunc("/locations/{id}", handlers.GetLocation).Methods(MethodsGetOnly...)
	api.HandleFunc("/locations/{id}", handlers.UpdateLocation).Methods(MethodsPutOnly...)
	api.HandleFunc("/locations/{id}", handlers.DeleteLocation).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/locations/{id}/image", handlers.UploadLocationImage).Methods(MethodsPostOnly...)
	api.HandleFunc("/locations/{id}/image", handlers.GetLocationImage).Methods(MethodsGetOnly...)

	// ====================
	// DOCUMENTS
	// ====================
	api.HandleFunc("/documents", handlers.ListDocuments).Methods(MethodsGetOnly...)
	api.HandleFunc("/documents", handlers.UploadDocument).Methods(MethodsPostOnly...)
	api.HandleFunc("/documents/{id}", handlers.GetDocument).Methods(MethodsGetOnly...)
	api.HandleFunc("/documents/{id}", handlers.UpdateDocument).Methods(MethodsPutOnly...)
	api.HandleFunc("/documents/{id}", handlers.DeleteDocument).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/documents/{id}/download", handlers.DownloadDocument).Methods(MethodsGetOnly...)
	api.HandleFunc("/documents/{id}/view", handlers.ViewDocument).Methods(MethodsGetOnly...)

	// ====================
	// PREVENTIVE MAINTENANCE
	// ====================
	api.HandleFunc("/pm", handlers.ListPMSchedules).Methods(MethodsGetOnly...)
	api.HandleFunc("/pm", handlers.CreatePMSchedule).Methods(MethodsPostOnly...)
	api.HandleFunc("/pm/{id}", handlers.GetPMSchedule).Methods(MethodsGetOnly...)
	api.HandleFunc("/pm/{id}", handlers.UpdatePMSchedule).Methods(MethodsPutOnly...)
	api.HandleFunc("/pm/{id}", handlers.DeletePMSchedule).Methods(MethodsDeleteOnly...)
	api.HandleFunc("/pm/{id}/generate-wo", handlers.GenerateWorkOrderFromPM).Methods(MethodsPostOnly...)

	// ====================
	// NOTIFICATIONS
	// ====================
	api.HandleFunc("/notifications/alerts", handlers.GetUpcomingAlerts).Methods(MethodsGetOnly...)

	// ====================
	// USER MANAGEMENT
	// ====================
	api.HandleFunc("/users", handlers.ListUsers).Methods(MethodsGetOnly...)
	api.HandleFunc("/users/{id}", handlers.GetUser).Methods(MethodsGetOnly...)
	api.HandleFunc("/users/{id}", handlers.UpdateUser).Methods(MethodsPutOnly...)
	api.HandleFunc("/users/{id}", handlers.DeleteUser).Methods(MethodsDeleteOnly...)
}
