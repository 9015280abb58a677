package sms

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name    string
		mobile  string
		want    string
		wantErr bool
	}{
		{name: "Local", mobile: "9876543210", want: "+919876543210"},
		{name: "LocalWithSpaces", mobile: " 9876543210 ", want: "+919876543210"},
		{name: "AlreadyE164", mobile: "+919876543210", want: "+919876543210"},
		{name: "OtherCountry", mobile: "+14155552671", want: "+14155552671"},
		{name: "TooShort", mobile: "98765", wantErr: true},
		{name: "NotDigits", mobile: "98765abcde", wantErr: true},
		{name: "Empty", mobile: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeE164(tt.mobile)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeE164(%q) error = %v, wantErr %v", tt.mobile, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tt.mobile, got, tt.want)
			}
		})
	}
}

func TestNewFromProvider(t *testing.T) {
	opts := FactoryOptions{
		Twilio:    TwilioConfig{AccountSID: "AC0", AuthToken: "tok", From: "+15550001111"},
		MSG91:     MSG91Config{AuthKey: "key", SenderID: "AUTHBT"},
		Fast2SMS:  Fast2SMSConfig{APIKey: "key"},
		Textlocal: TextlocalConfig{APIKey: "key", Sender: "AUTHBT"},
	}

	tests := []struct {
		name     string
		provider string
		wantErr  bool
	}{
		{name: "Twilio", provider: "twilio"},
		{name: "MSG91", provider: "msg91"},
		{name: "Fast2SMS", provider: "fast2sms"},
		{name: "Textlocal", provider: "textlocal"},
		{name: "Console", provider: "console"},
		{name: "Unknown", provider: "pigeon", wantErr: true},
		{name: "Unset", provider: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewFromProvider(tt.provider, opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFromProvider(%q) error = %v, wantErr %v", tt.provider, err, tt.wantErr)
			}
			if err == nil {
				defer s.Close()
			}
		})
	}
}

func TestMSG91_Send(t *testing.T) {
	var gotAuthKey, gotMobiles, gotMessage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm() error = %v", err)
		}
		gotAuthKey = r.PostFormValue("authkey")
		gotMobiles = r.PostFormValue("mobiles")
		gotMessage = r.PostFormValue("message")
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	m, err := NewMSG91(MSG91Config{AuthKey: "secret", SenderID: "AUTHBT", URL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("NewMSG91() error = %v", err)
	}

	if err := m.Send(context.Background(), Message{To: "9876543210", Body: "code 123456"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if gotAuthKey != "secret" {
		t.Errorf("authkey = %q, want %q", gotAuthKey, "secret")
	}
	if gotMobiles != "9876543210" {
		t.Errorf("mobiles = %q, want %q", gotMobiles, "9876543210")
	}
	if gotMessage != "code 123456" {
		t.Errorf("message = %q, want %q", gotMessage, "code 123456")
	}
}

func TestFast2SMS_SendRetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f, err := NewFast2SMS(Fast2SMSConfig{APIKey: "key", URL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("NewFast2SMS() error = %v", err)
	}

	if err := f.Send(context.Background(), Message{To: "9876543210", Body: "code"}); err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Errorf("gateway calls = %d, want 2", got)
	}
}

func TestTextlocal_SendRejectsBadRequestWithoutRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	tl, err := NewTextlocal(TextlocalConfig{APIKey: "key", Sender: "AUTHBT", URL: srv.URL}, srv.Client())
	if err != nil {
		t.Fatalf("NewTextlocal() error = %v", err)
	}

	if err := tl.Send(context.Background(), Message{To: "9876543210", Body: "code"}); err == nil {
		t.Fatal("Send() error = nil, want error")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("gateway calls = %d, want 1", got)
	}
}

func TestSend_InvalidMobile(t *testing.T) {
	m, err := NewMSG91(MSG91Config{AuthKey: "key", SenderID: "AUTHBT", URL: "http://invalid.test"}, http.DefaultClient)
	if err != nil {
		t.Fatalf("NewMSG91() error = %v", err)
	}

	if err := m.Send(context.Background(), Message{To: "12345", Body: "code"}); err == nil {
		t.Fatal("Send() error = nil, want ErrInvalidMobile")
	}
}
