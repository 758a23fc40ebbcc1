package email_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aureliefinejewels/storefront-api/pkg/email"
	"github.com/sendgrid/sendgrid-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewService(t *testing.T) {
	// Arrange
	apiKey := "test-api-key"
	fromEmail := "sender@example.com"
	fromName := "Test Sender"

	// Act
	service := email.NewService(apiKey, fromEmail, fromName)

	// Assert
	assert.NotNil(t, service)
}

type sendgridV3Payload struct {
	Personalizations []struct {
		To      []map[string]string `json:"to"`
		Subject string              `json:"subject"`
	} `json:"personalizations"`
	From    map[string]string `json:"from"`
	Content []struct {
		Type  string `json:"type"`
		Value string `json:"value"`
	} `json:"content"`
}

type clientExposer interface {
	GetSendGridClient() *sendgrid.Client
}

func TestService_Send(t *testing.T) {
	apiKey := "SG.test-api-key"
	fromEmail := "orders@example.com"
	fromName := "Test Jewels"
	ctx := t.Context()

	var mockServer *httptest.Server

	var lastRequestPayload sendgridV3Payload

	var handlerFunc http.HandlerFunc

	// startMockServer sets up and starts the httptest server with the current handlerFunc.
	startMockServer := func() {
		mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			bodyBytes, err := io.ReadAll(r.Body)
			if err != nil {
				http.Error(w, "Failed to read request body", http.StatusInternalServerError)

				return
			}

			defer r.Body.Close()

			err = json.Unmarshal(bodyBytes, &lastRequestPayload)
			if err != nil {
				http.Error(w, "Failed to unmarshal request body", http.StatusBadRequest)

				return
			}

			handlerFunc(w, r)
		}))
	}

	tests := []struct {
		name          string
		msg           *email.Message
		handler       http.HandlerFunc
		expectedError string
		checkPayload  func(t *testing.T, payload sendgridV3Payload)
	}{
		{
			name: "Success - Plain And HTML Content",
			msg: &email.Message{
				To:          "customer@example.com",
				Subject:     "Order AFJ-1001 confirmed",
				Content:     "Thank you for your order.",
				HTMLContent: "<h1>Thank you for your order.</h1>",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				// Assert
				assert.Equal(t, http.MethodPost, r.Method, "Expected POST request")
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, "Bearer "+apiKey, r.Header.Get("Authorization"))
				w.WriteHeader(http.StatusAccepted)
			},
			expectedError: "",
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1, "Expected one personalization block")
				pers := p.Personalizations[0]
				require.Len(t, pers.To, 1, "Expected one TO recipient")
				assert.Equal(t, "customer@example.com", pers.To[0]["email"])
				assert.Equal(t, "Order AFJ-1001 confirmed", pers.Subject)

				assert.Equal(t, fromEmail, p.From["email"])
				assert.Equal(t, fromName, p.From["name"])

				require.Len(t, p.Content, 2, "Expected two content blocks (text and html)")
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "Thank you for your order.", p.Content[0].Value)
				assert.Equal(t, "text/html", p.Content[1].Type)
				assert.Equal(t, "<h1>Thank you for your order.</h1>", p.Content[1].Value)
			},
		},
		{
			name: "Success - Plain Content Only",
			msg: &email.Message{
				To:      "customer@example.com",
				Subject: "Payment received",
				Content: "We have received your payment.",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
			},
			expectedError: "",
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Content, 1, "Expected only the plain text content block")
				assert.Equal(t, "text/plain", p.Content[0].Type)
				assert.Equal(t, "We have received your payment.", p.Content[0].Value)
			},
		},
		{
			name: "Failure - SendGrid API Error (4xx)",
			msg: &email.Message{
				To:      "bad@example.com",
				Subject: "Order confirmed",
				Content: "Content",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"errors": [{"message": "Invalid email"}]}`))
			},
			expectedError: "failed to send email, status code: 400",
			checkPayload: func(t *testing.T, p sendgridV3Payload) {
				require.Len(t, p.Personalizations, 1)
				assert.Equal(t, "bad@example.com", p.Personalizations[0].To[0]["email"])
			},
		},
		{
			name: "Failure - SendGrid API Error (5xx)",
			msg: &email.Message{
				To:      "customer@example.com",
				Subject: "Order confirmed",
				Content: "Content",
			},
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectedError: "failed to send email, status code: 500",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lastRequestPayload = sendgridV3Payload{}
			handlerFunc = tc.handler

			startMockServer()

			service := email.NewService(apiKey, fromEmail, fromName)

			sgClient := service.(clientExposer).GetSendGridClient()
			sgClient.Request.BaseURL = mockServer.URL

			// Act
			err := service.Send(ctx, tc.msg)

			// Assert
			if tc.expectedError == "" {
				assert.NoError(t, err, "Expected no error")
			} else {
				assert.Error(t, err, "Expected an error")
				assert.Contains(t, err.Error(), tc.expectedError, "Error message mismatch")
			}

			if tc.checkPayload != nil {
				tc.checkPayload(t, lastRequestPayload)
			}

			mockServer.Close()
		})
	}

	t.Run("Failure - Network Error", func(t *testing.T) {
		// Arrange
		startMockServer()

		service := email.NewService(apiKey, fromEmail, fromName)
		sgClient := service.(clientExposer).GetSendGridClient()
		sgClient.Request.BaseURL = mockServer.URL
		mockServer.Close()

		msg := &email.Message{
			To:      "customer@example.com",
			Subject: "Network Error Test",
			Content: "Content",
		}

		// Act
		err := service.Send(ctx, msg)

		// Assert
		assert.Error(t, err, "Expected a network error")
		assert.True(t, strings.Contains(err.Error(), "connect: connection refused") || strings.Contains(err.Error(), "dial tcp"), "Expected connection refused or dial tcp error")
	})
}
