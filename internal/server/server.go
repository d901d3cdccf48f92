// Package server provides the HTTP server for the ONVIF simulator.
//
// The server exposes one SOAP endpoint per simulated service:
//
//   - POST {basePath}/device_service - Device management
//   - POST {basePath}/media_service  - Media profiles and stream URIs
//   - POST {basePath}/ptz_service    - Pan/tilt/zoom
//
// Every POST endpoint requires WS-Security UsernameToken
// authentication. A rejected request receives a SOAP Sender fault with
// HTTP 401; an authenticated request naming an unsupported action
// receives a plain HTTP 400, deliberately distinct from the
// authentication failure.
//
// # Auxiliary endpoints
//
//   - GET {basePath}/device_service - WSDL stub for discovery
//   - GET /health                   - Liveness probe
//   - GET /                         - Server information
//   - GET /metrics                  - Prometheus metrics (if enabled)
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jesperperl/onvif-test-run/internal/auth"
	"github.com/jesperperl/onvif-test-run/internal/config"
	"github.com/jesperperl/onvif-test-run/internal/service"
	"github.com/jesperperl/onvif-test-run/pkg/soap"
)

// maxRequestBytes bounds an inbound envelope. ONVIF requests are small;
// 1 MiB is generous.
const maxRequestBytes = 1 << 20

// Server is the ONVIF simulator HTTP server.
type Server struct {
	config        *config.Config
	logger        *slog.Logger
	httpSrv       *http.Server
	mux           *http.ServeMux
	authenticator *auth.Authenticator
	registry      *service.Registry

	requestsTotal *prometheus.CounterVec
}

// New creates a new server. The credential store and action tables are
// built once here and are read-only afterward.
func New(cfg *config.Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:        cfg,
		logger:        logger,
		authenticator: auth.NewAuthenticator(auth.NewStore(cfg.Users), logger),
		registry:      service.NewRegistry(cfg, nil),
	}

	s.requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "onvif_requests_total",
		Help: "SOAP requests by service and outcome.",
	}, []string{"service", "outcome"})

	s.mux = http.NewServeMux()
	s.registerRoutes(s.mux)

	s.httpSrv = &http.Server{
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Handler returns the server's root handler. Intended for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start begins listening on the specified address
func (s *Server) Start(addr string) error {
	s.httpSrv.Addr = addr
	s.logger.Info("starting server", "addr", addr, "base_path", s.config.Server.BasePath)
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	basePath := strings.TrimSuffix(s.config.Server.BasePath, "/")

	mux.HandleFunc("POST "+basePath+"/device_service", s.handleService(service.Device))
	mux.HandleFunc("POST "+basePath+"/media_service", s.handleService(service.Media))
	mux.HandleFunc("POST "+basePath+"/ptz_service", s.handleService(service.PTZ))

	// WSDL stub for clients that probe with GET.
	mux.HandleFunc("GET "+basePath+"/device_service", s.handleWSDL)

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	if s.config.Metrics.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(s.requestsTotal)
		mux.Handle("GET "+s.config.Metrics.Metrics.Path,
			promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}
}

// handleService builds the POST handler for one service: parse,
// authenticate, dispatch, wrap.
func (s *Server) handleService(svc service.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxRequestBytes))
		if err != nil {
			s.soapFault(w, svc, http.StatusBadRequest, "Sender", "Unreadable request body")
			return
		}

		req, err := soap.ParseRequest(data)
		if err != nil {
			// Malformed input carries neither credentials nor action
			// and is rejected at the authentication stage.
			s.logger.Debug("unparsable envelope", "service", svc, "error", err)
			req = &soap.Request{}
		}

		decision := s.authenticator.Authenticate(req.Token)
		if !decision.Accepted {
			s.logger.Info("authentication failed", "service", svc, "remote", r.RemoteAddr)
			s.soapFault(w, svc, http.StatusUnauthorized, "Sender", "Authentication failed")
			return
		}

		if req.Action == nil {
			s.clientError(w, svc, "Unsupported action")
			return
		}

		body, err := s.registry.Dispatch(svc, req.Action.Name, req.Action.Element)
		if err != nil {
			if errors.Is(err, service.ErrUnsupportedAction) {
				s.logger.Info("unsupported action",
					"service", svc, "action", req.Action.Name, "user", decision.Principal)
				s.clientError(w, svc, fmt.Sprintf("Unsupported action: %s", req.Action.Name))
				return
			}
			s.logger.Error("handler failed", "service", svc, "action", req.Action.Name, "error", err)
			s.requestsTotal.WithLabelValues(string(svc), "error").Inc()
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		s.logger.Debug("request handled",
			"service", svc, "action", req.Action.Name, "user", decision.Principal)
		s.requestsTotal.WithLabelValues(string(svc), "ok").Inc()

		w.Header().Set("Content-Type", soap.ContentType)
		w.WriteHeader(http.StatusOK)
		w.Write(soap.WriteResponse(body))
	}
}

// soapFault writes a fault envelope. Used for authentication failures
// and unreadable bodies.
func (s *Server) soapFault(w http.ResponseWriter, svc service.Service, status int, code, reason string) {
	s.requestsTotal.WithLabelValues(string(svc), "unauthorized").Inc()
	w.Header().Set("Content-Type", soap.ContentType)
	w.WriteHeader(status)
	w.Write(soap.WriteFault(code, reason))
}

// clientError signals an unsupported action as a transport-level error,
// not a protocol fault, so clients can tell it apart from a rejected
// credential.
func (s *Server) clientError(w http.ResponseWriter, svc service.Service, detail string) {
	s.requestsTotal.WithLabelValues(string(svc), "bad_request").Inc()
	http.Error(w, detail, http.StatusBadRequest)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.jsonResponse(w, map[string]string{"status": "healthy", "service": "ONVIF Server"}, http.StatusOK)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	basePath := strings.TrimSuffix(s.config.Server.BasePath, "/")
	s.jsonResponse(w, map[string]any{
		"service": "ONVIF Service Server",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"device_service": basePath + "/device_service",
			"media_service":  basePath + "/media_service",
			"ptz_service":    basePath + "/ptz_service",
		},
		"authentication": "WS-Security UsernameToken required",
		"supported_operations": map[string][]string{
			"device": s.registry.Actions(service.Device),
			"media":  s.registry.Actions(service.Media),
			"ptz":    s.registry.Actions(service.PTZ),
		},
	}, http.StatusOK)
}

func (s *Server) handleWSDL(w http.ResponseWriter, r *http.Request) {
	xaddr := fmt.Sprintf("http://localhost:%d%s/device_service",
		s.config.Server.Port, strings.TrimSuffix(s.config.Server.BasePath, "/"))

	w.Header().Set("Content-Type", "text/xml")
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<definitions xmlns="http://schemas.xmlsoap.org/wsdl/"
             xmlns:tds="%[1]s"
             targetNamespace="%[1]s">
    <types>
        <!-- ONVIF Device Management Schema -->
    </types>
    <message name="GetDeviceInformationRequest"/>
    <message name="GetDeviceInformationResponse"/>
    <portType name="Device">
        <operation name="GetDeviceInformation">
            <input message="tds:GetDeviceInformationRequest"/>
            <output message="tds:GetDeviceInformationResponse"/>
        </operation>
    </portType>
    <binding name="DeviceBinding" type="tds:Device">
        <!-- SOAP binding details -->
    </binding>
    <service name="DeviceService">
        <port name="DevicePort" binding="tds:DeviceBinding">
            <soap:address location="%[2]s"/>
        </port>
    </service>
</definitions>`, soap.NsDevice, xaddr)
}

func (s *Server) jsonResponse(w http.ResponseWriter, data any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
