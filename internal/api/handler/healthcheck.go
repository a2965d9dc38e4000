package handler

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const rootMessage = "Revenue Command Center API is running"

func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(time.Now().String()))
		if err != nil {
			logrus.WithError(err).Warn("error responding to healthcheck")
		}
	})
}

// RootHandler responde GET /api com a fonte de dados em uso
func RootHandler(sourceName string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, map[string]string{
			"message":     rootMessage,
			"data_source": sourceName,
		})
	})
}
