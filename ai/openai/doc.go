// Package openai provides AI service implementations for OpenAI-compatible
// APIs (OpenAI, Ollama, LocalAI, vLLM, and similar).
//
// This package implements the ai.Provider interface using the langchaingo
// client library. The embedding endpoint is the only service the ingestion
// pipeline needs.
package openai
