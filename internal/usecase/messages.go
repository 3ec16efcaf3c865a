package usecase

// LINE message texts sent to doctors
const (
	msgLeaveCandidate   = "มีคำขอให้อยู่เวรแทน\nรหัสคำขอ: %s\nแพทย์ผู้ขอลา: %s\nวันที่: %s ถึง %s\nหากต้องการรับเวรแทน พิมพ์ \"ok\""
	msgReplacementFound = "คำขอลาวันที่ %s ถึง %s ได้แพทย์อยู่เวรแทนแล้ว: %s"
	msgLeaveApproved    = "คำขอลาวันที่ %s ถึง %s ได้รับการอนุมัติโดย %s"
	msgLeaveRejected    = "คำขอลาวันที่ %s ถึง %s ไม่ได้รับการอนุมัติโดย %s"

	msgConfirmDoctor     = "พบข้อมูลแพทย์: %s\nใช่คุณหรือไม่?\nพิมพ์ 1 เพื่อยืนยัน\nพิมพ์ 2 เพื่อยกเลิก"
	msgConfirmReprompt   = "กรุณาพิมพ์ 1 เพื่อยืนยัน หรือ 2 เพื่อยกเลิก"
	msgDoctorNotFound    = "ไม่พบรหัสแพทย์นี้ในระบบ กรุณาตรวจสอบและพิมพ์รหัสอีกครั้ง"
	msgRegisterSuccess   = "ลงทะเบียนสำเร็จ ยินดีต้อนรับ %s"
	msgRegisterCancelled = "ยกเลิกการลงทะเบียนแล้ว"
	msgSessionExpired    = "หมดเวลาการยืนยัน กรุณาพิมพ์รหัสแพทย์อีกครั้ง"

	msgAcceptSuccess = "คุณได้รับเวรแทน %s เรียบร้อยแล้ว\nวันที่: %s ถึง %s"
	msgAlreadyTaken  = "ขออภัย มีแพทย์ท่านอื่นรับเวรนี้ไปแล้ว"
	msgNotEligible   = "คุณไม่อยู่ในรายชื่อแพทย์อยู่เวรแทนของคำขอนี้ หรือได้ตอบรับไปแล้ว"
	msgNotRegistered = "บัญชี LINE นี้ยังไม่ได้ลงทะเบียน กรุณาพิมพ์รหัสแพทย์เพื่อลงทะเบียน"
	msgLeaveGone     = "ไม่พบคำขอลานี้ในระบบแล้ว"
	msgAcceptFailed  = "ระบบขัดข้อง ไม่สามารถบันทึกการรับเวรได้ กรุณาพิมพ์ \"ok\" ใหม่อีกครั้งภายหลัง"
	msgReplyOK       = "หากต้องการรับเวรแทน กรุณาพิมพ์ \"ok\""
)
