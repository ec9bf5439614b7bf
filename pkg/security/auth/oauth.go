package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/samuelmonteirotf/habitus-app/pkg/config"
)

// OAuthStateStore manages OAuth state tokens to prevent CSRF
type OAuthStateStore struct {
	states map[string]stateData
	mu     sync.RWMutex
}

type stateData struct {
	Provider  string
	Subject   string
	ExpiresAt time.Time
}

// NewOAuthStateStore creates an empty state store
func NewOAuthStateStore() *OAuthStateStore {
	return &OAuthStateStore{
		states: make(map[string]stateData),
	}
}

// GenerateState creates a new state token and stores it
func (s *OAuthStateStore) GenerateState(provider string) (string, error) {
	return s.GenerateStateFor(provider, "")
}

// GenerateStateFor creates a state token bound to a subject, so the
// callback can recover who initiated the flow
func (s *OAuthStateStore) GenerateStateFor(provider, subject string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	state := base64.URLEncoding.EncodeToString(b)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state] = stateData{
		Provider:  provider,
		Subject:   subject,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	return state, nil
}

// ValidateState checks if a state token is valid and removes it
func (s *OAuthStateStore) ValidateState(state, provider string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, exists := s.states[state]
	if !exists {
		return false
	}

	if time.Now().After(data.ExpiresAt) {
		delete(s.states, state)
		return false
	}

	if data.Provider != provider {
		return false
	}

	// Valid state, remove it so it can't be reused
	delete(s.states, state)
	return true
}

// ConsumeState validates a state token and returns the subject it was
// bound to
func (s *OAuthStateStore) ConsumeState(state, provider string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, exists := s.states[state]
	if !exists {
		return "", false
	}
	delete(s.states, state)

	if time.Now().After(data.ExpiresAt) || data.Provider != provider {
		return "", false
	}

	return data.Subject, true
}

// CleanupExpiredStates removes expired state tokens
func (s *OAuthStateStore) CleanupExpiredStates() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for state, data := range s.states {
		if now.After(data.ExpiresAt) {
			delete(s.states, state)
		}
	}
}

// UserInfo represents user information from OAuth providers
type UserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Provider      string
	Raw           map[string]interface{}
}

// OAuthService handles OAuth2 authorization flows
type OAuthService struct {
	providers   map[string]*oauth2.Config
	stateStore  *OAuthStateStore
	cfg         *config.Config
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

// NewOAuthService creates a new OAuth service with configured providers.
// The state store is injected so callers share one instance explicitly.
func NewOAuthService(cfg *config.Config, stateStore *OAuthStateStore) *OAuthService {
	service := &OAuthService{
		providers:   make(map[string]*oauth2.Config),
		stateStore:  stateStore,
		cfg:         cfg,
		stopCleanup: make(chan struct{}),
	}

	for name, providerCfg := range cfg.Auth.OAuth2Providers {
		service.providers[name] = &oauth2.Config{
			ClientID:     providerCfg.ClientID,
			ClientSecret: providerCfg.ClientSecret,
			RedirectURL:  providerCfg.RedirectURL,
			Scopes:       providerCfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  providerCfg.AuthURL,
				TokenURL: providerCfg.TokenURL,
			},
		}
	}

	go service.cleanupLoop()

	return service
}

func (s *OAuthService) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopCleanup:
			return
		case <-ticker.C:
			s.stateStore.CleanupExpiredStates()
		}
	}
}

// Close stops the background state cleanup. Safe to call more than
// once.
func (s *OAuthService) Close() {
	s.stopOnce.Do(func() {
		close(s.stopCleanup)
	})
}

// GetAuthURL returns an OAuth2 authorization URL for the specified provider
func (s *OAuthService) GetAuthURL(provider string) (string, string, error) {
	return s.GetAuthURLFor(provider, "")
}

// GetAuthURLFor returns an authorization URL whose state is bound to a
// subject, recoverable on callback via ConsumeState
func (s *OAuthService) GetAuthURLFor(provider, subject string) (string, string, error) {
	providerConfig, exists := s.providers[provider]
	if !exists {
		return "", "", fmt.Errorf("unknown OAuth provider: %s", provider)
	}

	state, err := s.stateStore.GenerateStateFor(provider, subject)
	if err != nil {
		return "", "", err
	}

	// access_type=offline so Google issues a refresh token alongside the
	// access token on first consent
	url := providerConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, state, nil
}

// ValidateState delegates to the injected state store
func (s *OAuthService) ValidateState(state, provider string) bool {
	return s.stateStore.ValidateState(state, provider)
}

// ConsumeState delegates to the injected state store
func (s *OAuthService) ConsumeState(state, provider string) (string, bool) {
	return s.stateStore.ConsumeState(state, provider)
}

// Exchange exchanges an authorization code for a token
func (s *OAuthService) Exchange(ctx context.Context, provider, code string) (*oauth2.Token, error) {
	providerConfig, exists := s.providers[provider]
	if !exists {
		return nil, fmt.Errorf("unknown OAuth provider: %s", provider)
	}

	return providerConfig.Exchange(ctx, code)
}

// GetUserInfo fetches user information from the OAuth provider
func (s *OAuthService) GetUserInfo(ctx context.Context, provider string, token *oauth2.Token) (*UserInfo, error) {
	providerConfig, exists := s.providers[provider]
	if !exists {
		return nil, fmt.Errorf("unknown OAuth provider: %s", provider)
	}

	client := providerConfig.Client(ctx, token)

	providerCfg, exists := s.cfg.Auth.OAuth2Providers[provider]
	if !exists || providerCfg.UserInfoURL == "" {
		return nil, errors.New("missing user info URL for provider")
	}

	resp, err := client.Get(providerCfg.UserInfoURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("failed to get user info: %s - %s", resp.Status, string(body))
	}

	var rawData map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&rawData); err != nil {
		return nil, err
	}

	userInfo := &UserInfo{
		Provider: provider,
		Raw:      rawData,
	}

	if id, ok := rawData["id"].(string); ok {
		userInfo.ID = id
	} else if id, ok := rawData["sub"].(string); ok {
		userInfo.ID = id
	}

	if email, ok := rawData["email"].(string); ok {
		userInfo.Email = email
	}

	if verified, ok := rawData["verified_email"].(bool); ok {
		userInfo.VerifiedEmail = verified
	} else if verified, ok := rawData["email_verified"].(bool); ok {
		userInfo.VerifiedEmail = verified
	}

	if name, ok := rawData["name"].(string); ok {
		userInfo.Name = name
	}

	if picture, ok := rawData["picture"].(string); ok {
		userInfo.Picture = picture
	}

	return userInfo, nil
}
