// Package port connects byte sources to [ptz.Detector] instances.
//
// A [Reader] owns one byte source (normally a serial port opened with [Open]) and one
// detector. Its Run loop polls the source, feeds every received byte to the detector,
// applies the configured address filter and hands each decoded command to a
// [CommandHandler]. The handler runs synchronously on the reader goroutine.
//
// Serial ports are opened with a read timeout, so an idle line yields empty reads rather than
// blocking forever; this is what lets Run observe context cancellation.
//
// A [Hub] runs several readers concurrently, one goroutine and one detector per port.
package port
