package profile

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/coachportal/internal/geoip"
	"github.com/2beens/coachportal/pkg"

	log "github.com/sirupsen/logrus"
)

type locator interface {
	GetRequestGeoInfo(ctx context.Context, r *http.Request) (geoip.Location, error)
}

type profileMerger interface {
	Merge(ctx context.Context, uid string, fields map[string]any) error
}

// LoginRecorder stores where and when a user last signed in.
type LoginRecorder struct {
	profiles profileMerger
	geo      locator
	now      func() time.Time
}

// NewLoginRecorder creates a recorder, geo may be nil when lookups are off.
func NewLoginRecorder(profiles profileMerger, geo locator) *LoginRecorder {
	return &LoginRecorder{
		profiles: profiles,
		geo:      geo,
		now:      time.Now,
	}
}

// RecordLogin merges the sign-in audit and the account email into the profile.
// A failed location lookup still records the sign-in.
func (lr *LoginRecorder) RecordLogin(ctx context.Context, r *http.Request, uid, email, method string) error {
	audit := LoginAudit{
		At:     lr.now(),
		Method: method,
	}
	if ip, err := pkg.ReadUserIP(r); err == nil {
		audit.IP = ip
	}

	if lr.geo != nil {
		location, err := lr.geo.GetRequestGeoInfo(ctx, r)
		if err != nil {
			log.Warnf("login audit for %s, geo lookup: %s", uid, err)
		} else {
			audit.IP = location.IP
			audit.City = location.City
			audit.Country = location.Country
		}
	}

	return lr.profiles.Merge(ctx, uid, map[string]any{
		"lastLogin": audit,
		"email":     email,
	})
}
