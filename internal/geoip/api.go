package geoip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/2beens/coachportal/internal/telemetry/tracing"
	"github.com/2beens/coachportal/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const cacheTTL = 24 * time.Hour

// Location is where a sign-in came from.
type Location struct {
	IP      string `json:"ip"`
	City    string `json:"city"`
	Country string `json:"country"`
}

var devLocation = Location{
	IP:      "localhost",
	City:    "Berlin",
	Country: "Germany",
}

type Api struct {
	mu          sync.Mutex
	client      *ipinfo.Client
	redisClient *redis.Client
}

func NewApi(
	ipInfoAPIKey string,
	httpClient *http.Client,
	redisClient *redis.Client,
) *Api {
	return &Api{
		client:      ipinfo.NewClient(httpClient, nil, ipInfoAPIKey),
		redisClient: redisClient,
	}
}

func (gi *Api) GetRequestGeoInfo(ctx context.Context, r *http.Request) (Location, error) {
	userIp, err := pkg.ReadUserIP(r)
	if err != nil {
		return Location{}, fmt.Errorf("get user ip: %w", err)
	}
	return gi.Lookup(ctx, userIp)
}

// Lookup resolves the ip to a city and country, going to ipinfo only
// when the redis cache has no entry.
func (gi *Api) Lookup(ctx context.Context, ip string) (_ Location, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoIp.lookup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.ip", ip))

	// used for development
	if ip == "localhost" {
		log.Debugf("request geo info: returning development localhost / Berlin")
		return devLocation, nil
	}

	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return Location{}, fmt.Errorf("ip addr %s is invalid", ip)
	}

	// concurrent sign-ins from the same address should cost one api call
	gi.mu.Lock()
	defer gi.mu.Unlock()

	userIpKey := fmt.Sprintf("ip-info::%s", ip)
	cmd := gi.redisClient.Get(ctx, userIpKey)
	if err := cmd.Err(); err != nil && !errors.Is(err, redis.Nil) {
		log.Errorf("failed to find ip info from redis for [%s]: %s", userIpKey, err)
	}

	if cached := cmd.Val(); cached != "" {
		var location Location
		if err := json.Unmarshal([]byte(cached), &location); err == nil {
			span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
			log.Tracef("found geo ip info for [%s] in redis cache", ip)
			return location, nil
		}
		log.Errorf("failed to unmarshal cached ip info from redis for %s: %s", ip, err)
	}
	span.SetAttributes(attribute.Bool("user.ip.from-cache", false))

	log.Debugf("will ask ipinfo for: %s", ip)
	info, err := gi.client.GetIPInfo(parsedIP)
	if err != nil {
		return Location{}, fmt.Errorf("get ip info: %w", err)
	}

	location := Location{
		IP:      ip,
		City:    info.City,
		Country: info.CountryName,
	}
	if location.Country == "" {
		location.Country = info.Country
	}

	locationBytes, err := json.Marshal(location)
	if err != nil {
		return Location{}, fmt.Errorf("marshal location: %w", err)
	}
	if err := gi.redisClient.Set(ctx, userIpKey, string(locationBytes), cacheTTL).Err(); err != nil {
		log.Errorf("failed to cache ip info in redis for %s: %s", ip, err)
	} else {
		log.Debugf("ip info cache set in redis for: %s", ip)
	}

	return location, nil
}
