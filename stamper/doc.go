// Package stamper writes STM32MP boot headers onto FSBL image files.
//
// # Overview
//
// A Stamper performs the complete file-level sequence:
//   - Reading the raw image into memory
//   - Building the header with package fsbl
//   - Verifying the stamped image (optional, on by default)
//   - Writing header and payload to the output file atomically
//
// # Basic Usage
//
//	s := stamper.New(stamper.WithFormat(fsbl.FormatMP2))
//
//	res, err := s.Stamp("tf-a.bin", "tf-a.stm32")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("wrote %d bytes, checksum 0x%08X\n", res.TotalSize, res.Header.Checksum)
//
// # Configuration Options
//
//	s := stamper.New(
//	    stamper.WithFormat(fsbl.FormatMP1),
//	    stamper.WithLogger(myLogger),
//	    stamper.WithProgressCallback(progressFunc),
//	    stamper.WithFileMode(0o600),
//	    stamper.WithVerifyAfterStamp(true),
//	)
//
// # Inspecting Images
//
//	ins, err := s.Inspect("tf-a.stm32")
//	if err == nil && !ins.Valid {
//	    fmt.Println("corrupt image:", ins.Problem)
//	}
//
// # Error Handling
//
//   - fsbl.AlreadyHeadedError: the input already carries a header
//   - IOError: reading the input or writing the output failed
//   - VerificationError: the stamped image did not pass its own checks
//
// No output file exists at the destination path after a failed Stamp
// unless one was there before.
package stamper
