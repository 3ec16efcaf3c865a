package http

import (
	"net/http"

	"doctor-roster/internal/delivery/http/handler"
	"doctor-roster/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	doctorHandler           *handler.DoctorHandler
	departmentHandler       *handler.DepartmentHandler
	shiftRequestHandler     *handler.ShiftRequestHandler
	leaveHandler            *handler.LeaveHandler
	lineWebhookHandler      *handler.LineWebhookHandler
	lineSignatureMiddleware *middleware.LineSignatureMiddleware
	corsMiddleware          *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	departmentHandler *handler.DepartmentHandler,
	shiftRequestHandler *handler.ShiftRequestHandler,
	leaveHandler *handler.LeaveHandler,
	lineWebhookHandler *handler.LineWebhookHandler,
	lineSignatureMiddleware *middleware.LineSignatureMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		doctorHandler:           doctorHandler,
		departmentHandler:       departmentHandler,
		shiftRequestHandler:     shiftRequestHandler,
		leaveHandler:            leaveHandler,
		lineWebhookHandler:      lineWebhookHandler,
		lineSignatureMiddleware: lineSignatureMiddleware,
		corsMiddleware:          corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Doctors
	api.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	api.HandleFunc("/doctors", r.doctorHandler.GetAllDoctors).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)

	// Departments
	api.HandleFunc("/departments", r.departmentHandler.CreateDepartment).Methods(http.MethodPost)
	api.HandleFunc("/departments", r.departmentHandler.GetAllDepartments).Methods(http.MethodGet)
	api.HandleFunc("/departments/{id}", r.departmentHandler.GetDepartment).Methods(http.MethodGet)
	api.HandleFunc("/departments/{id}", r.departmentHandler.UpdateDepartment).Methods(http.MethodPut)
	api.HandleFunc("/departments/{id}", r.departmentHandler.DeleteDepartment).Methods(http.MethodDelete)
	api.HandleFunc("/departments/{id}/sub-departments", r.departmentHandler.AddSubDepartment).Methods(http.MethodPatch)
	api.HandleFunc("/departments/{id}/sub-departments/{name}/shifts", r.departmentHandler.AddShift).Methods(http.MethodPatch)

	// Shift requests (table routes are registered before {id})
	api.HandleFunc("/shift-requests/table", r.shiftRequestHandler.GetShiftTable).Methods(http.MethodGet)
	api.HandleFunc("/shift-requests/table/export", r.shiftRequestHandler.ExportShiftTable).Methods(http.MethodGet)
	api.HandleFunc("/shift-requests", r.shiftRequestHandler.CreateShiftRequest).Methods(http.MethodPost)
	api.HandleFunc("/shift-requests", r.shiftRequestHandler.ListShiftRequests).Methods(http.MethodGet)
	api.HandleFunc("/shift-requests/{id}", r.shiftRequestHandler.GetShiftRequest).Methods(http.MethodGet)
	api.HandleFunc("/shift-requests/{id}/status", r.shiftRequestHandler.UpdateShiftRequestStatus).Methods(http.MethodPatch)

	// Leave requests
	api.HandleFunc("/leaves", r.leaveHandler.CreateLeave).Methods(http.MethodPost)
	api.HandleFunc("/leaves", r.leaveHandler.ListLeaves).Methods(http.MethodGet)
	api.HandleFunc("/leaves/doctor/{doctorId}", r.leaveHandler.ListLeavesByDoctor).Methods(http.MethodGet)
	api.HandleFunc("/leaves/{id}", r.leaveHandler.GetLeave).Methods(http.MethodGet)
	api.HandleFunc("/leaves/{id}", r.leaveHandler.UpdateLeave).Methods(http.MethodPut)
	api.HandleFunc("/leaves/{id}", r.leaveHandler.DeleteLeave).Methods(http.MethodDelete)
	api.HandleFunc("/leaves/{id}/approve", r.leaveHandler.ApproveLeave).Methods(http.MethodPost)
	api.HandleFunc("/leaves/{id}/reject", r.leaveHandler.RejectLeave).Methods(http.MethodPost)
	api.HandleFunc("/leaves/{id}/confirm", r.leaveHandler.ConfirmLeave).Methods(http.MethodPost)

	// LINE webhook, mounted under the API prefix and at the root
	webhook := r.lineSignatureMiddleware.Verify(http.HandlerFunc(r.lineWebhookHandler.HandleWebhook))
	api.Handle("/webhook/line", webhook).Methods(http.MethodPost)
	r.router.Handle("/webhook/line", webhook).Methods(http.MethodPost)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
