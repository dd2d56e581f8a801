package main

// @title           LaudoService API
// @version         1.0
// @description     API para emissão e controle de laudos de higienização

// @contact.name   Suporte
// @contact.email  suporte@higitec.com.br

// @host      localhost:8080
// @BasePath  /api/v1
