package animals

// Política "read-all / write-own", como funciones puras sobre el registro.
// No es un motor de reglas: es un chequeo plano de ownership y así debe
// quedar mientras no existan roles reales.

// CanRead: cualquier sujeto autenticado lee cualquier registro.
func CanRead(callerID string, _ Animal) bool {
	return callerID != ""
}

// CanWrite: solo el owner muta o borra. Igualdad exacta de identificadores,
// sin jerarquías ni delegación.
func CanWrite(callerID string, a Animal) bool {
	return callerID != "" && callerID == a.OwnerID
}
