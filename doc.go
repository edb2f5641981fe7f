// SPDX-License-Identifier: EPL-2.0

// Package sndcore is a channel based 3D audio playback engine.
//
// A System owns one playback device, a registry of sound channels and the
// gain state. Callers hand it decoded assets and get channel handles back:
//
//	sys, err := sndcore.New(config.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer sys.Close()
//
//	a, err := sys.LoadAsset("door.ogg")
//	if err != nil {
//		return err
//	}
//	ch := sys.PlaySound3D(mgl32.Vec3{4, 0, 0}, a, channel.Triggered, nil)
//
//	for range ticker.C {
//		sys.Update(frameTime)
//	}
//
// All methods must be called from one goroutine, normally the frame loop.
// Update is the per frame entry point: it pushes the listener pose to the
// device, advances every channel and removes the ones that stopped.
package sndcore
