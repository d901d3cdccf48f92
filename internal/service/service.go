// Package service implements the ONVIF action dispatchers and the
// per-service response generators.
//
// Each service owns a closed table mapping action names to handlers.
// The tables are built once at startup from configuration and are
// read-only afterward, so dispatch is safe for concurrent requests.
package service

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/beevik/etree"

	"github.com/jesperperl/onvif-test-run/internal/config"
	"github.com/jesperperl/onvif-test-run/pkg/soap"
)

// ErrUnsupportedAction indicates an action name outside the service's
// table. Callers must surface it as a client error, distinct from an
// authentication failure.
var ErrUnsupportedAction = errors.New("unsupported action")

// Service identifies one of the three simulated ONVIF services.
type Service string

// The simulated services.
const (
	Device Service = "device"
	Media  Service = "media"
	PTZ    Service = "ptz"
)

// Namespace returns the service's action namespace.
func (s Service) Namespace() string {
	switch s {
	case Device:
		return soap.NsDevice
	case Media:
		return soap.NsMedia
	case PTZ:
		return soap.NsPTZ
	}
	return ""
}

// HandlerFunc generates the response body fragment for one action.
// param is the opaque action element from the request and may carry
// parameters such as a profile reference.
type HandlerFunc func(param *etree.Element) (string, error)

// Registry holds the per-service action tables.
type Registry struct {
	cfg      *config.Config
	now      func() time.Time
	handlers map[Service]map[string]HandlerFunc
}

// NewRegistry builds the action tables from configuration. The clock
// is injected for GetSystemDateAndTime; nil means wall clock.
func NewRegistry(cfg *config.Config, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	r := &Registry{cfg: cfg, now: now}
	r.handlers = map[Service]map[string]HandlerFunc{
		Device: {
			"GetDeviceInformation": r.getDeviceInformation,
			"GetCapabilities":      r.getCapabilities,
			"GetServices":          r.getServices,
			"GetSystemDateAndTime": r.getSystemDateAndTime,
		},
		Media: {
			"GetProfiles":     r.getProfiles,
			"GetStreamUri":    r.getStreamURI,
			"GetVideoSources": r.getVideoSources,
		},
		PTZ: {
			"GetConfigurations": r.getPTZConfigurations,
			"GetNodes":          r.getPTZNodes,
			"GetStatus":         r.getPTZStatus,
			"AbsoluteMove":      emptyResponse("tptz:AbsoluteMoveResponse"),
			"RelativeMove":      emptyResponse("tptz:RelativeMoveResponse"),
			"ContinuousMove":    emptyResponse("tptz:ContinuousMoveResponse"),
			"Stop":              emptyResponse("tptz:StopResponse"),
		},
	}
	return r
}

// Dispatch resolves and invokes the handler for (service, action).
func (r *Registry) Dispatch(svc Service, action string, param *etree.Element) (string, error) {
	table, ok := r.handlers[svc]
	if !ok {
		return "", fmt.Errorf("%w: unknown service %q", ErrUnsupportedAction, svc)
	}
	h, ok := table[action]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedAction, action)
	}
	return h(param)
}

// Actions lists the supported action names of a service, sorted.
func (r *Registry) Actions(svc Service) []string {
	table := r.handlers[svc]
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// xaddr is the advertised endpoint address for a service.
func (r *Registry) xaddr(svc Service) string {
	return fmt.Sprintf("http://localhost:%d%s/%s_service",
		r.cfg.Server.Port, r.cfg.Server.BasePath, svc)
}

func emptyResponse(element string) HandlerFunc {
	return func(*etree.Element) (string, error) {
		return fmt.Sprintf("\n        <%s>\n        </%s>", element, element), nil
	}
}
