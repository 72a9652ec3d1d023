package web

import (
	"encoding/json"
	"net/http"
)

// Envelope estándar de la API:
//   ok:    {"success":true,"data":{...}}
//   error: {"success":false,"error":{"message":"...","code":"..."}}
//
// Antes cada módulo duplicaba su writeJSON; con cuatro módulos usando el
// mismo envelope ya conviene el helper común.

type dataEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Data escribe una respuesta exitosa con el envelope estándar.
func Data(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, dataEnvelope{Success: true, Data: data})
}

// Error escribe una respuesta de error con code estable para clientes.
// Nunca incluye detalle interno (stack, errores de driver).
func Error(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorEnvelope{
		Success: false,
		Error:   errorBody{Message: message, Code: code},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
