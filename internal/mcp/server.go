package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// Server is the transport side of the protocol loop. Requests arrive on
// ReadChannel, responses are queued on WriteChannel.
type Server interface {
	Start(ctx context.Context)
	ReadChannel() <-chan JSONRPCRequest
	WriteChannel() chan<- JSONRPCResponse
	Wait()
	Close() error
}

// StdioServer speaks line-delimited JSON over a reader/writer pair,
// normally os.Stdin and os.Stdout.
type StdioServer struct {
	reader      io.Reader
	writer      io.Writer
	readChan    chan JSONRPCRequest
	writeChan   chan JSONRPCResponse
	shutdownCtx context.Context
	cancelFunc  context.CancelFunc
	wg          sync.WaitGroup
}

// NewStdioServer creates a server bound to the given streams.
func NewStdioServer(reader io.Reader, writer io.Writer) *StdioServer {
	ctx, cancel := context.WithCancel(context.Background())
	return &StdioServer{
		reader:      reader,
		writer:      writer,
		readChan:    make(chan JSONRPCRequest),
		writeChan:   make(chan JSONRPCResponse),
		shutdownCtx: ctx,
		cancelFunc:  cancel,
	}
}

// Start launches the reader and writer goroutines. The reader parses one
// JSON-RPC message per line and drops malformed lines; the writer emits
// one JSON message per line, flushing after each.
func (s *StdioServer) Start(ctx context.Context) {
	s.wg.Add(2)

	go func() {
		defer s.wg.Done()
		defer close(s.readChan)
		scanner := bufio.NewScanner(s.reader)
		// Allow large frames: inline image arguments can run to megabytes.
		scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
		for scanner.Scan() {
			select {
			case <-s.shutdownCtx.Done():
				return
			default:
			}
			line := scanner.Bytes()
			var request JSONRPCRequest
			if err := json.Unmarshal(line, &request); err != nil {
				slog.Debug("Skipping malformed frame", "error", err)
				continue
			}
			select {
			case s.readChan <- request:
			case <-s.shutdownCtx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil && err != io.EOF {
			slog.Error("Transport read failed", "error", err)
		}
		s.cancelFunc() // EOF on stdin means the client is gone
	}()

	go func() {
		defer s.wg.Done()
		writer := bufio.NewWriter(s.writer)
		for {
			select {
			case <-s.shutdownCtx.Done():
				_ = writer.Flush()
				return
			case response, ok := <-s.writeChan:
				if !ok {
					_ = writer.Flush()
					return
				}
				respBytes, err := json.Marshal(response)
				if err != nil {
					slog.Error("Failed to marshal response", "error", err)
					continue
				}
				if _, err := writer.Write(respBytes); err != nil {
					s.cancelFunc()
					return
				}
				if _, err := writer.WriteString("\n"); err != nil {
					s.cancelFunc()
					return
				}
				if err := writer.Flush(); err != nil {
					s.cancelFunc()
					return
				}
			}
		}
	}()
}

// ReadChannel returns the channel carrying incoming requests.
func (s *StdioServer) ReadChannel() <-chan JSONRPCRequest {
	return s.readChan
}

// WriteChannel returns the channel accepting outgoing responses.
func (s *StdioServer) WriteChannel() chan<- JSONRPCResponse {
	return s.writeChan
}

// Wait blocks until the server has shut down completely.
func (s *StdioServer) Wait() {
	<-s.shutdownCtx.Done()
	s.wg.Wait()
}

// Close initiates a graceful shutdown.
func (s *StdioServer) Close() error {
	s.cancelFunc()
	s.Wait()
	close(s.writeChan)
	return nil
}
