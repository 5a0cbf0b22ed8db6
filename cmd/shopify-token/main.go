// Command shopify-token walks the Shopify OAuth install flow on the command
// line and prints the offline access token to register with the dashboard.
//
// It prints the install URL, waits for the merchant to approve the app, and
// exchanges the authorization code delivered to the local callback.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/config"

	"golang.org/x/oauth2"
)

const (
	callbackAddr = "localhost:3000"
	callbackPath = "/callback"
)

func oauthConfig(shopURL, clientID, clientSecret string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  "http://" + callbackAddr + callbackPath,
		Scopes:       []string{"read_orders", "read_analytics"},
		Endpoint: oauth2.Endpoint{
			AuthURL:  fmt.Sprintf("https://%s/admin/oauth/authorize", shopURL),
			TokenURL: fmt.Sprintf("https://%s/admin/oauth/access_token", shopURL),
		},
	}
}

func main() {
	shopURL := flag.String("shop", "", "shop URL, e.g. demo-store.myshopify.com")
	flag.Parse()
	if *shopURL == "" {
		log.Fatal("-shop is required")
	}

	cfg, err := config.LoadFromEnv("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Shopify.ClientID == "" || cfg.Shopify.ClientSecret == "" {
		log.Fatal("SHOPIFY_CLIENT_ID and SHOPIFY_CLIENT_SECRET are required")
	}

	oc := oauthConfig(*shopURL, cfg.Shopify.ClientID, cfg.Shopify.ClientSecret)
	state := fmt.Sprintf("growifyx-%d", time.Now().UnixNano())

	fmt.Println("Open this URL in a browser and approve the app:")
	fmt.Println()
	fmt.Println("  " + oc.AuthCodeURL(state))
	fmt.Println()

	codeCh := make(chan string, 1)
	server := &http.Server{Addr: callbackAddr}
	http.HandleFunc(callbackPath, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization received. You can close this tab.")
		codeCh <- code
	})

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Callback listener failed: %v", err)
		}
	}()

	code := <-codeCh

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	token, err := oc.Exchange(ctx, code)
	if err != nil {
		log.Fatalf("Token exchange failed: %v", err)
	}
	server.Shutdown(ctx)

	fmt.Println()
	fmt.Println("Access token (register it with POST /auth/register):")
	fmt.Println()
	fmt.Println("  " + token.AccessToken)
}
