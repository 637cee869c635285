package service

import "errors"

var errGatewayNotConfigured = errors.New("payment gateway not configured")
