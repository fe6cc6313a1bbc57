package service

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skip2/go-qrcode"
)

var ErrTableTokenMissing = errors.New("table token missing")

type tableClaims struct {
	RestaurantID int `json:"rid"`
	TableNumber  int `json:"tbl"`
	jwt.RegisteredClaims
}

// TableQR builds the link printed on a table's QR code. Without a secret the
// link carries only the restaurant and table number; with one it also carries
// an HS256 token binding both, optionally expiring after TTL.
type TableQR struct {
	BaseURL string
	Secret  []byte
	TTL     time.Duration
	Now     func() time.Time
}

func NewTableQR(baseURL, secret string, ttl time.Duration) *TableQR {
	qr := &TableQR{BaseURL: baseURL, TTL: ttl, Now: time.Now}
	if secret != "" {
		qr.Secret = []byte(secret)
	}
	return qr
}

func (g *TableQR) Signed() bool {
	return len(g.Secret) > 0
}

func (g *TableQR) Link(restaurantID, tableNumber int) (string, error) {
	q := url.Values{}
	q.Set("restaurant", strconv.Itoa(restaurantID))
	q.Set("table", strconv.Itoa(tableNumber))

	if g.Signed() {
		token, err := g.sign(restaurantID, tableNumber)
		if err != nil {
			return "", err
		}
		q.Set("token", token)
	}
	return g.BaseURL + "/menu?" + q.Encode(), nil
}

func (g *TableQR) PNG(restaurantID, tableNumber int) ([]byte, error) {
	link, err := g.Link(restaurantID, tableNumber)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(link, qrcode.Medium, 256)
}

func (g *TableQR) Verify(token string) (int, int, error) {
	if token == "" {
		return 0, 0, ErrTableTokenMissing
	}

	var claims tableClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return g.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(g.now))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid table token: %w", err)
	}
	return claims.RestaurantID, claims.TableNumber, nil
}

func (g *TableQR) sign(restaurantID, tableNumber int) (string, error) {
	now := g.now()
	claims := tableClaims{
		RestaurantID: restaurantID,
		TableNumber:  tableNumber,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if g.TTL > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(g.TTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.Secret)
}

func (g *TableQR) now() time.Time {
	if g.Now == nil {
		return time.Now()
	}
	return g.Now()
}
